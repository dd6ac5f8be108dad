// Package config loads graphcsv settings from an optional TOML file.
//
// Settings are layered: [Default] values, then the file passed to [Load],
// then command-line flags applied by the caller. A file only needs the keys
// it overrides:
//
//	comment = "The Round Table"
//	formats = ["pdf", "svg"]
//
//	[graph]
//	rankdir = "LR"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	apperr "github.com/matzehuels/graphcsv/pkg/errors"
)

// Config holds rendering and input settings.
type Config struct {
	Comment   string     `toml:"comment"`
	Formats   []string   `toml:"formats" validate:"required,min=1,dive,oneof=pdf svg png dot json"`
	View      bool       `toml:"view"`
	ShortRows string     `toml:"short_rows" validate:"oneof=error skip"`
	Graph     GraphAttrs `toml:"graph"`
	Node      NodeAttrs  `toml:"node"`
}

// GraphAttrs are graph-level Graphviz attributes.
type GraphAttrs struct {
	RankDir string `toml:"rankdir" validate:"omitempty,oneof=TB LR BT RL"`
}

// NodeAttrs are default Graphviz node attributes.
type NodeAttrs struct {
	Shape    string  `toml:"shape" validate:"omitempty,printascii"`
	FontName string  `toml:"fontname"`
	FontSize float64 `toml:"fontsize" validate:"gte=0,lte=200"`
}

var validate = validator.New()

// Default returns the built-in settings: a single PDF opened in the viewer.
func Default() Config {
	return Config{
		Comment:   "The Round Table",
		Formats:   []string{"pdf"},
		View:      true,
		ShortRows: "error",
		Graph:     GraphAttrs{RankDir: "TB"},
	}
}

// Load reads the TOML file at path over [Default] and validates the result.
// Keys the file does not set keep their default values; unknown keys are an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, apperr.New(apperr.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values against their allowed sets.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "validate")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not one of [%s]", fe.Namespace(), fe.Value(), fe.Param()))
		case "required", "min":
			msgs = append(msgs, fmt.Sprintf("%s: at least one value is required", fe.Namespace()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", fe.Namespace(), fe.Tag()))
		}
	}
	return apperr.New(apperr.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
}
