package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubnet/internal/entrez"
)

var countCmd = &cobra.Command{
	Use:   "count [query]",
	Short: "Print how many PubMed records match a query",
	Long: `Count reports the total number of PubMed records matching a query
without retrieving any of them. Useful for sizing a search before
running it.`,
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	client := entrez.NewClient(clientConfig(cmd), nil)
	count, err := client.Count(context.Background(), query)
	if err != nil {
		return err
	}

	fmt.Printf("%d matching records\n", count)
	return nil
}
