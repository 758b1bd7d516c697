// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubnet/pkg/types"
)

// QueryFile is the on-disk representation of a query and its results.
// A search can be saved to a file and reloaded later without re-querying
// PubMed. Papers and books are stored separately so both kinds survive
// the round trip.
type QueryFile struct {
	Query   string           `yaml:"query"`
	Options QueryFileOptions `yaml:"options"`
	Papers  []*types.Article `yaml:"papers,omitempty"`
	Books   []*types.Book    `yaml:"books,omitempty"`
	Summary QuerySummary     `yaml:"summary"`
}

// QueryFileOptions stores the options that produced the results.
type QueryFileOptions struct {
	MaxResults int    `yaml:"max_results"`
	StartYear  int    `yaml:"start_year,omitempty"`
	Skip       string `yaml:"skip,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Retrieved int       `yaml:"retrieved"`
	Skipped   int       `yaml:"skipped,omitempty"`
	Failed    int       `yaml:"failed,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a query run to a YAML file.
func WriteQueryFile(path string, out QueryOutput, opts QueryOptions) error {
	qf := QueryFile{
		Query: out.Query,
		Options: QueryFileOptions{
			MaxResults: opts.MaxResults,
			StartYear:  opts.StartYear,
			Skip:       string(opts.Skip),
		},
		Summary: QuerySummary{
			Total:     out.Total,
			Retrieved: len(out.Records),
			Skipped:   out.Fetch.Skipped,
			Failed:    out.Fetch.Failed,
			Timestamp: time.Now(),
		},
	}
	for _, r := range out.Records {
		switch rec := r.(type) {
		case *types.Article:
			qf.Papers = append(qf.Papers, rec)
		case *types.Book:
			qf.Books = append(qf.Books, rec)
		}
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Records rebuilds the materialized record list, papers first.
func (qf *QueryFile) Records() []types.Record {
	records := make([]types.Record, 0, len(qf.Papers)+len(qf.Books))
	for _, p := range qf.Papers {
		records = append(records, p)
	}
	for _, b := range qf.Books {
		records = append(records, b)
	}
	return records
}
