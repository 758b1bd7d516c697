package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubnet/internal/entrez"
	"github.com/pdiddy/pubnet/internal/export"
)

var idsCmd = &cobra.Command{
	Use:   "ids [query]",
	Short: "Write the PMIDs matching a query to a file",
	Long: `Ids resolves a query to PubMed identifiers without fetching the full
records and writes them to a file, one PMID per line. The file is
overwritten on every run.`,
	RunE: runIDs,
}

func init() {
	idsCmd.Flags().Int("max-results", 0, "maximum ids to retrieve (0 = configured default, negative = all)")
	idsCmd.Flags().Int("start-year", 0, "restrict the search to publications from this year on")
	idsCmd.Flags().String("out", "pmids.txt", "output file path")

	rootCmd.AddCommand(idsCmd)
}

func runIDs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")
	outPath, _ := cmd.Flags().GetString("out")

	cfg := clientConfig(cmd)
	client := entrez.NewClient(cfg, nil)

	ids, err := client.SearchIDs(context.Background(), query, cfg.MaxResults)
	if err != nil {
		return err
	}

	if err := export.WriteIDFile(outPath, ids); err != nil {
		return fmt.Errorf("writing id file: %w", err)
	}
	fmt.Printf("Wrote %d PMIDs to %s\n", len(ids), outPath)
	return nil
}
