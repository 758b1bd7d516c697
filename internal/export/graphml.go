// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/pubnet/internal/coauthor"
	"github.com/pdiddy/pubnet/pkg/types"
)

const graphmlNS = "http://graphml.graphdrawing.org/xmlns"

// WriteGraphML writes the graph as an undirected GraphML document with a
// label attribute on nodes and a weight attribute on edges. Gephi and
// yEd import it directly. Node and edge filters from cfg apply as in the
// CSV writers.
func WriteGraphML(w io.Writer, g *coauthor.Graph, cfg types.GraphConfig) error {
	doc := graphmlDoc{
		NS: graphmlNS,
		Keys: []graphmlKey{
			{ID: "label", For: "node", AttrName: "label", AttrType: "string"},
			{ID: "weight", For: "edge", AttrName: "weight", AttrType: "int"},
		},
		Graph: graphmlGraph{ID: "coauthorship", EdgeDefault: "undirected"},
	}

	for _, n := range g.Nodes {
		if cfg.DropIsolated && n.Degree == 0 {
			continue
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{
			ID:   nodeRef(n.ID),
			Data: []graphmlData{{Key: "label", Value: n.Label}},
		})
	}
	for _, e := range g.Edges {
		if e.Weight < cfg.MinWeight {
			continue
		}
		src, _ := g.NodeID(e.A)
		dst, _ := g.NodeID(e.B)
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: nodeRef(src),
			Target: nodeRef(dst),
			Data:   []graphmlData{{Key: "weight", Value: strconv.Itoa(e.Weight)}},
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering graphml: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return err
	}
	return nil
}

func nodeRef(id int) string {
	return "n" + strconv.Itoa(id)
}

// GraphML document structures.
type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	NS      string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}
