// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubnet/internal/entrez"
	"github.com/pdiddy/pubnet/internal/store"
	"github.com/pdiddy/pubnet/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local article cache (search, export, stats)",
	Long: `Cache manages the local SQLite article cache written by search and
graph runs with --cache. Use subcommands to search cached records
offline, export them, or inspect the cache contents.`,
}

// --- search subcommand ---

var cacheSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search cached records with full-text search and filters",
	Long: `Search runs an FTS5 full-text query over the titles and abstracts of
cached records, optionally filtered by record kind or publication year.
With no query it lists cached records in PMID order.`,
	RunE: runCacheSearch,
}

func runCacheSearch(cmd *cobra.Command, args []string) error {
	s, err := store.Open(cacheConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	opts, err := cacheSearchOptions(cmd, args)
	if err != nil {
		return err
	}

	records, err := s.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	entrez.FormatTable(entrez.QueryOutput{Records: records, Total: len(records)}, os.Stdout)
	return nil
}

func cacheSearchOptions(cmd *cobra.Command, args []string) (store.SearchOptions, error) {
	kindName, _ := cmd.Flags().GetString("kind")
	since, _ := cmd.Flags().GetInt("since")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := store.SearchOptions{
		Query:      strings.Join(args, " "),
		SinceYear:  since,
		MaxResults: limit,
	}
	if kindName != "" {
		kind, err := types.ParseRecordKind(kindName)
		if err != nil {
			return store.SearchOptions{}, err
		}
		opts.Kind = kind
	}
	return opts, nil
}

// --- export subcommand ---

var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the article cache to YAML or JSON",
	Long: `Export writes every cached record to a YAML or JSON file, papers and
books separated, for offline processing outside pubnet.`,
	RunE: runCacheExport,
}

func runCacheExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	s, err := store.Open(cacheConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	switch format {
	case "yaml", "":
		if outPath == "" {
			outPath = "export.yaml"
		}
		if err := s.ExportYAML(context.Background(), outPath); err != nil {
			return err
		}
	case "json":
		if outPath == "" {
			outPath = "export.json"
		}
		if err := s.ExportJSON(context.Background(), outPath); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Printf("Exported cache to %s\n", outPath)
	return nil
}

// --- stats subcommand ---

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show article cache contents",
	RunE:  runCacheStats,
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	s, err := store.Open(cacheConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Records: %d (%d papers, %d books)\n", st.Records, st.Papers, st.Books)
	fmt.Printf("Cached queries: %d\n", st.Queries)
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	cacheCmd.PersistentFlags().String("db", "", "cache database path (default: configured cache_path)")

	// Search flags.
	cacheSearchCmd.Flags().String("kind", "", "filter by record kind: paper or book")
	cacheSearchCmd.Flags().Int("since", 0, "keep only records published in this year or later")
	cacheSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	cacheSearchCmd.Flags().Bool("json", false, "output records as JSON")

	// Export flags.
	cacheExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	cacheExportCmd.Flags().String("out", "", "output file path (default export.yaml or export.json)")

	// Wire subcommands.
	cacheCmd.AddCommand(cacheSearchCmd)
	cacheCmd.AddCommand(cacheExportCmd)
	cacheCmd.AddCommand(cacheStatsCmd)

	rootCmd.AddCommand(cacheCmd)
}
