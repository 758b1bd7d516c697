// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/pubnet/pkg/types"
)

// fetchBatchSize is how many PMIDs one efetch request carries.
const fetchBatchSize = 250

// Skip selects a record kind to drop while fetching. The zero value
// keeps everything.
type Skip types.RecordKind

const (
	SkipNone   Skip = ""
	SkipPapers Skip = Skip(types.KindPaper)
	SkipBooks  Skip = Skip(types.KindBook)
)

// ParseSkip maps a --skip flag value to a Skip. Empty input means skip
// nothing.
func ParseSkip(s string) (Skip, error) {
	if strings.TrimSpace(s) == "" {
		return SkipNone, nil
	}
	kind, err := types.ParseRecordKind(s)
	if err != nil {
		return SkipNone, err
	}
	return Skip(kind), nil
}

// FetchResult holds the outcome of a batched fetch run.
type FetchResult struct {
	Fetched int // records parsed and kept
	Skipped int // records dropped by the skip option
	Failed  int // IDs in batches whose fetch or parse failed
	Records []types.Record
}

// Total returns the total number of records accounted for.
func (r FetchResult) Total() int {
	return r.Fetched + r.Skipped + r.Failed
}

// HasFailures reports whether any batch failed.
func (r FetchResult) HasFailures() bool {
	return r.Failed > 0
}

// Fetch retrieves full records for ids in batches, printing per-batch
// progress to w and continuing past individual batch failures. The
// returned error is non-nil only when the context ends; HTTP and parse
// failures are counted in the result instead.
func (c *Client) Fetch(ctx context.Context, ids []string, skip Skip, w io.Writer) (FetchResult, error) {
	var result FetchResult
	if len(ids) == 0 {
		return result, nil
	}

	batches := batchIDs(ids, fetchBatchSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if i > 0 && c.cfg.BatchDelay > 0 {
			time.Sleep(c.cfg.BatchDelay)
		}

		records, skipped, err := c.fetchBatch(ctx, batch, skip)
		if err != nil {
			fmt.Fprintf(w, "failed:  batch %d/%d (%v)\n", i+1, len(batches), err)
			result.Failed += len(batch)
			continue
		}
		result.Records = append(result.Records, records...)
		result.Fetched += len(records)
		result.Skipped += skipped
		fmt.Fprintf(w, "fetched: batch %d/%d (%d records)\n", i+1, len(batches), len(records))
	}

	fmt.Fprintf(w, "\nFetch summary: %d fetched, %d skipped, %d failed (total: %d)\n",
		result.Fetched, result.Skipped, result.Failed, result.Total())
	return result, nil
}

func (c *Client) fetchBatch(ctx context.Context, ids []string, skip Skip) ([]types.Record, int, error) {
	params := url.Values{}
	params.Set("id", strings.Join(ids, ","))
	body, err := c.get(ctx, efetchPath, params, "xml")
	if err != nil {
		return nil, 0, err
	}
	return ParseRecords(body, skip)
}

// batchIDs slices ids into runs of at most size elements.
func batchIDs(ids []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
