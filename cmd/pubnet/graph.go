// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubnet/internal/coauthor"
	"github.com/pdiddy/pubnet/internal/entrez"
	"github.com/pdiddy/pubnet/internal/export"
	"github.com/pdiddy/pubnet/internal/store"
	"github.com/pdiddy/pubnet/pkg/types"
)

var graphCmd = &cobra.Command{
	Use:   "graph [query]",
	Short: "Build a co-authorship network from a PubMed query",
	Long: `Graph runs the full pipeline: it queries PubMed, extracts the author
list of every record, tallies each unordered pair of co-authors across
the result set, and writes the weighted network to disk.

The default output is a pair of CSV files (nodes.csv with id and label,
edges.csv with source, target, and weight) that Gephi imports directly.
GraphML and JSON documents are available through --format. With
--from-cache the network is rebuilt offline from previously cached
results.`,
	RunE: runGraph,
}

func init() {
	addSearchFlags(graphCmd)
	graphCmd.Flags().String("nodes", "nodes.csv", "nodes CSV output path")
	graphCmd.Flags().String("edges", "edges.csv", "edges CSV output path")
	graphCmd.Flags().String("format", "csv", "output format: csv, json, or graphml")
	graphCmd.Flags().String("out", "", "output path for json/graphml (default graph.json or graph.graphml)")
	graphCmd.Flags().Int("min-weight", 0, "omit edges below this weight")
	graphCmd.Flags().Bool("drop-isolated", false, "omit authors with no co-authorship edges")
	graphCmd.Flags().Bool("self-loops", false, "keep pairs of an author name with itself")
	graphCmd.Flags().Bool("from-cache", false, "rebuild from cached results instead of querying PubMed")
	graphCmd.Flags().Bool("cache", false, "store fetched records in the article cache")

	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	records, err := graphRecords(cmd, query)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	gcfg := graphConfig(cmd)
	g := coauthor.BuildGraph(coauthor.AuthorLists(records), gcfg)

	if err := writeGraphOutputs(cmd, g, gcfg); err != nil {
		return err
	}

	stats := g.Stats()
	fmt.Printf("Graph: %d nodes, %d edges (weight sum %d)\n",
		stats.Nodes, stats.Edges, stats.WeightSum)
	fmt.Printf("Components: %d (largest %d, isolated authors %d)\n",
		stats.Components, stats.Largest, stats.Isolated)
	return nil
}

// graphRecords resolves the records to build from, either live from
// PubMed or offline from the cache.
func graphRecords(cmd *cobra.Command, query string) ([]types.Record, error) {
	fromCache, _ := cmd.Flags().GetBool("from-cache")
	ctx := context.Background()

	if fromCache {
		s, err := store.Open(cacheConfig(cmd))
		if err != nil {
			return nil, err
		}
		defer s.Close()

		ids, _, found, err := s.LookupQuery(ctx, query)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("query %q is not cached; run pubnet search --cache first", query)
		}
		return s.Records(ctx, ids)
	}

	opts, err := queryOptions(cmd)
	if err != nil {
		return nil, err
	}
	client := entrez.NewClient(clientConfig(cmd), nil)
	out, err := client.Query(ctx, query, opts, os.Stderr)
	if err != nil {
		return nil, err
	}

	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		if err := cacheResults(cmd, out); err != nil {
			return nil, err
		}
	}
	return out.Records, nil
}

func graphConfig(cmd *cobra.Command) types.GraphConfig {
	minWeight, _ := cmd.Flags().GetInt("min-weight")
	dropIsolated, _ := cmd.Flags().GetBool("drop-isolated")
	selfLoops, _ := cmd.Flags().GetBool("self-loops")

	return types.GraphConfig{
		KeepSelfLoops: selfLoops,
		DropIsolated:  dropIsolated,
		MinWeight:     minWeight,
	}
}

func writeGraphOutputs(cmd *cobra.Command, g *coauthor.Graph, gcfg types.GraphConfig) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	switch format {
	case "csv", "":
		nodesPath, _ := cmd.Flags().GetString("nodes")
		edgesPath, _ := cmd.Flags().GetString("edges")
		if err := export.ExportFiles(nodesPath, edgesPath, g, gcfg); err != nil {
			return err
		}
		fmt.Printf("Wrote %s and %s\n", nodesPath, edgesPath)
	case "json":
		if outPath == "" {
			outPath = "graph.json"
		}
		if err := writeGraphFile(outPath, g, gcfg, export.WriteJSON); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", outPath)
	case "graphml":
		if outPath == "" {
			outPath = "graph.graphml"
		}
		if err := writeGraphFile(outPath, g, gcfg, export.WriteGraphML); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", outPath)
	default:
		return fmt.Errorf("unsupported format %q: use csv, json, or graphml", format)
	}
	return nil
}

func writeGraphFile(path string, g *coauthor.Graph, gcfg types.GraphConfig,
	write func(io.Writer, *coauthor.Graph, types.GraphConfig) error) error {
	var buf bytes.Buffer
	if err := write(&buf, g, gcfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
