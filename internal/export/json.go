package export

import (
	"encoding/json"
	"io"

	"github.com/pdiddy/pubnet/internal/coauthor"
	"github.com/pdiddy/pubnet/pkg/types"
)

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	Degree int    `json:"degree"`
}

type jsonEdge struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Weight int `json:"weight"`
}

// WriteJSON writes the graph as an indented JSON document with node and
// edge arrays, the shape d3-force and similar layouts consume. Node and
// edge filters from cfg apply as in the CSV writers.
func WriteJSON(w io.Writer, g *coauthor.Graph, cfg types.GraphConfig) error {
	doc := jsonGraph{
		Nodes: make([]jsonNode, 0, len(g.Nodes)),
		Edges: make([]jsonEdge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		if cfg.DropIsolated && n.Degree == 0 {
			continue
		}
		doc.Nodes = append(doc.Nodes, jsonNode{ID: n.ID, Label: n.Label, Degree: n.Degree})
	}
	for _, e := range g.Edges {
		if e.Weight < cfg.MinWeight {
			continue
		}
		src, _ := g.NodeID(e.A)
		dst, _ := g.NodeID(e.B)
		doc.Edges = append(doc.Edges, jsonEdge{Source: src, Target: dst, Weight: e.Weight})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
