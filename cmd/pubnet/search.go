package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubnet/internal/entrez"
	"github.com/pdiddy/pubnet/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search PubMed and print the matching records",
	Long: `Search sends a query to PubMed, fetches the matching records in
batches, and prints them as a table or JSON. Results can be saved to a
YAML file for later reuse or stored in the local article cache.

The query uses PubMed search syntax, e.g. "occupational health[Title]".`,
	RunE: runSearch,
}

func init() {
	addSearchFlags(searchCmd)
	searchCmd.Flags().Bool("json", false, "output records as JSON")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().Bool("cache", false, "store fetched records in the article cache")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	opts, err := queryOptions(cmd)
	if err != nil {
		return err
	}

	client := entrez.NewClient(clientConfig(cmd), nil)
	out, err := client.Query(context.Background(), query, opts, os.Stderr)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := entrez.WriteQueryFile(savePath, out, opts); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query results to %s\n", savePath)
	}

	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		if err := cacheResults(cmd, out); err != nil {
			return err
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return entrez.FormatJSON(out, os.Stdout)
	}
	entrez.FormatTable(out, os.Stdout)
	return nil
}

// --- shared search helpers ---

// addSearchFlags registers the flags shared by record-retrieving commands.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-results", 0, "maximum records to retrieve (0 = configured default, negative = all)")
	cmd.Flags().Int("start-year", 0, "restrict the search to publications from this year on")
	cmd.Flags().String("skip", "", "record kind to skip: book or paper")
}

// queryOptions builds entrez query options from the shared flags.
func queryOptions(cmd *cobra.Command) (entrez.QueryOptions, error) {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	startYear, _ := cmd.Flags().GetInt("start-year")
	skipName, _ := cmd.Flags().GetString("skip")

	skip, err := entrez.ParseSkip(skipName)
	if err != nil {
		return entrez.QueryOptions{}, err
	}
	return entrez.QueryOptions{
		MaxResults: maxResults,
		StartYear:  startYear,
		Skip:       skip,
	}, nil
}

// cacheResults stores fetched records and the query memo in the cache.
func cacheResults(cmd *cobra.Command, out entrez.QueryOutput) error {
	s, err := store.Open(cacheConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	saved, err := s.SaveRecords(ctx, out.Records)
	if err != nil {
		return err
	}
	if err := s.SaveQuery(ctx, out.Query, out.IDs, out.Total); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Cached %d records\n", saved)
	return nil
}
