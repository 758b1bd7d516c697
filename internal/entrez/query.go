// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubnet/pkg/types"
)

// QueryOptions adjusts a single query run.
type QueryOptions struct {
	// MaxResults caps the number of records retrieved. Zero falls back
	// to the client default; negative retrieves everything.
	MaxResults int

	// StartYear overrides the client's search floor for this query.
	// Zero keeps the configured value.
	StartYear int

	// Skip drops one record kind from the fetch.
	Skip Skip
}

// QueryOutput holds the materialized outcome of one query run. Records
// is a plain slice; callers iterate it as often as they like.
type QueryOutput struct {
	// Query is the search term as sent to PubMed.
	Query string

	// Total is the number of matches PubMed reports for the query,
	// which can exceed the number retrieved.
	Total int

	// IDs are the PMIDs retrieved, in fetch order.
	IDs []string

	// Records are the fetched records, papers before books.
	Records []types.Record

	// Fetch summarizes the batch retrieval.
	Fetch FetchResult
}

// Query resolves matching PMIDs and fetches their full records. Progress
// goes to w. An empty result set is a success: zero records, nil error.
func (c *Client) Query(ctx context.Context, query string, opts QueryOptions, w io.Writer) (QueryOutput, error) {
	if strings.TrimSpace(query) == "" {
		return QueryOutput{}, fmt.Errorf("query is empty")
	}

	max := opts.MaxResults
	if max == 0 {
		max = c.cfg.MaxResults
	}
	startYear := opts.StartYear
	if startYear == 0 {
		startYear = c.cfg.StartYear
	}

	ids, total, err := c.searchIDs(ctx, query, max, startYear)
	if err != nil {
		return QueryOutput{}, err
	}

	out := QueryOutput{Query: query, Total: total, IDs: ids}
	if len(ids) == 0 {
		return out, nil
	}

	result, err := c.Fetch(ctx, ids, opts.Skip, w)
	if err != nil {
		return QueryOutput{}, err
	}
	out.Records = result.Records
	out.Fetch = result
	return out, nil
}

// FormatTable writes records as a human-readable table to w.
func FormatTable(out QueryOutput, w io.Writer) {
	if len(out.Records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-10s  %-10s  %-60s  %s\n",
		"Rank", "PMID", "Date", "Title", "Authors")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for i, r := range out.Records {
		title := r.RecordTitle()
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		date := ""
		if d := r.RecordDate(); !d.IsZero() {
			date = d.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-10s  %-10s  %-60s  %s\n",
			i+1, r.RecordID(), date, title, formatAuthors(r.RecordAuthors()))
	}

	fmt.Fprintf(w, "\n%d of %d matching records\n", len(out.Records), out.Total)
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(out QueryOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Records)
}

func formatAuthors(authors []types.Author) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0].DisplayName(), 24)
	default:
		return truncate(authors[0].DisplayName(), 18) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
