// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package coauthor builds weighted co-authorship graphs from PubMed
// records. Every unordered pair of authors sharing a record becomes an
// edge whose weight counts the records they share.
package coauthor

import (
	"sort"

	"github.com/pdiddy/pubnet/pkg/types"
)

// AuthorLists extracts one display-name list per record, in source order.
// Records without authors are skipped, as are authors whose name renders
// empty. The lists feed BuildGraph.
func AuthorLists(records []types.Record) [][]string {
	lists := make([][]string, 0, len(records))
	for _, r := range records {
		authors := r.RecordAuthors()
		names := make([]string, 0, len(authors))
		for _, a := range authors {
			if name := a.DisplayName(); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			lists = append(lists, names)
		}
	}
	return lists
}

// Node is one author in the graph, identified by rendered display name.
// Two people sharing a rendered name collapse into one node; the source
// data cannot tell them apart.
type Node struct {
	// ID is a stable integer index, assigned in first-seen order.
	ID int

	// Label is the author display name.
	Label string

	// Degree is the number of edges incident to the node.
	Degree int
}

// Edge connects two authors with the number of records they share.
// Endpoints are in canonical order, A before B.
type Edge struct {
	A      string
	B      string
	Weight int
}

// Graph is a weighted undirected co-authorship graph. Build it with
// BuildGraph; it is immutable afterwards.
type Graph struct {
	Nodes []Node
	Edges []Edge

	index map[string]int
}

// pairKey is an unordered author pair normalized so that equal pairs
// compare equal regardless of listing order.
type pairKey struct {
	a, b string
}

// BuildGraph tallies every unordered 2-combination of each list in a
// single pass over the input. A list with fewer than two names
// contributes nodes but no pairs. Pairs of a name with itself (the same
// rendered name listed twice on one record) are dropped unless
// cfg.KeepSelfLoops is set. Identical input yields identical output.
func BuildGraph(lists [][]string, cfg types.GraphConfig) *Graph {
	g := &Graph{index: make(map[string]int)}
	weights := make(map[pairKey]int)

	for _, names := range lists {
		for _, name := range names {
			g.addNode(name)
		}
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				a, b := names[i], names[j]
				if a == b && !cfg.KeepSelfLoops {
					continue
				}
				if b < a {
					a, b = b, a
				}
				weights[pairKey{a, b}]++
			}
		}
	}

	g.Edges = make([]Edge, 0, len(weights))
	for k, w := range weights {
		g.Edges = append(g.Edges, Edge{A: k.a, B: k.b, Weight: w})
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].A != g.Edges[j].A {
			return g.Edges[i].A < g.Edges[j].A
		}
		return g.Edges[i].B < g.Edges[j].B
	})

	for _, e := range g.Edges {
		g.Nodes[g.index[e.A]].Degree++
		if e.B != e.A {
			g.Nodes[g.index[e.B]].Degree++
		}
	}
	return g
}

func (g *Graph) addNode(label string) int {
	if id, ok := g.index[label]; ok {
		return id
	}
	id := len(g.Nodes)
	g.index[label] = id
	g.Nodes = append(g.Nodes, Node{ID: id, Label: label})
	return id
}

// NodeID returns the integer id assigned to label.
func (g *Graph) NodeID(label string) (int, bool) {
	id, ok := g.index[label]
	return id, ok
}

// Stats summarizes a graph for reporting.
type Stats struct {
	Nodes      int
	Edges      int
	WeightSum  int
	Components int
	Largest    int
	Isolated   int
}

// Stats computes summary statistics. Components counts connected
// components including single isolated nodes; Largest is the member
// count of the biggest one.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.Nodes), Edges: len(g.Edges)}

	uf := newUnionFind(len(g.Nodes))
	for _, e := range g.Edges {
		s.WeightSum += e.Weight
		uf.union(g.index[e.A], g.index[e.B])
	}

	for _, n := range g.Nodes {
		if n.Degree == 0 {
			s.Isolated++
		}
	}
	s.Components = uf.components()
	for i := range g.Nodes {
		if size := uf.componentSize(i); size > s.Largest {
			s.Largest = size
		}
	}
	return s
}
