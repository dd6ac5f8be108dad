// Package io exports built graphs as JSON for downstream tools.
//
// # JSON Format
//
// Nodes are listed in index order and edges in edge order. Each edge carries
// both the resolved indices and the original labels:
//
//	{
//	  "nodes": [
//	    {"index": 0, "label": "Arthur"},
//	    {"index": 1, "label": "Lancelot"}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1, "source": "Arthur", "target": "Lancelot"}
//	  ]
//	}
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer:
//
//	if err := io.ExportJSON(g, "knights.json"); err != nil {
//	    return err
//	}
//
// Both validate the graph first, so a graph with a dangling edge endpoint is
// never written.
package io
