// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes co-authorship graphs and PMID lists in the
// artifact formats external graph tools import: paired CSV node/edge
// tables, GraphML, and a JSON document for web visualization layers.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdiddy/pubnet/internal/coauthor"
	"github.com/pdiddy/pubnet/pkg/types"
)

// WriteNodesCSV writes the node table with header "id,label", one row
// per node. Isolated nodes are dropped when cfg.DropIsolated is set.
func WriteNodesCSV(w io.Writer, g *coauthor.Graph, cfg types.GraphConfig) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "label"}); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		if cfg.DropIsolated && n.Degree == 0 {
			continue
		}
		if err := cw.Write([]string{strconv.Itoa(n.ID), n.Label}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEdgesCSV writes the edge table with header "source,target,weight".
// Endpoints are node ids. Edges below cfg.MinWeight are dropped.
func WriteEdgesCSV(w io.Writer, g *coauthor.Graph, cfg types.GraphConfig) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source", "target", "weight"}); err != nil {
		return err
	}
	for _, e := range g.Edges {
		if e.Weight < cfg.MinWeight {
			continue
		}
		src, _ := g.NodeID(e.A)
		dst, _ := g.NodeID(e.B)
		row := []string{strconv.Itoa(src), strconv.Itoa(dst), strconv.Itoa(e.Weight)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFiles writes the paired nodes and edges CSV files, overwriting
// previous runs.
func ExportFiles(nodesPath, edgesPath string, g *coauthor.Graph, cfg types.GraphConfig) error {
	var buf bytes.Buffer
	if err := WriteNodesCSV(&buf, g, cfg); err != nil {
		return fmt.Errorf("rendering nodes: %w", err)
	}
	if err := os.WriteFile(nodesPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing nodes file: %w", err)
	}

	buf.Reset()
	if err := WriteEdgesCSV(&buf, g, cfg); err != nil {
		return fmt.Errorf("rendering edges: %w", err)
	}
	if err := os.WriteFile(edgesPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing edges file: %w", err)
	}
	return nil
}
