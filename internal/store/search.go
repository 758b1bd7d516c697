// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/pubnet/pkg/types"
)

// SearchOptions holds parameters for cache queries.
type SearchOptions struct {
	// Query is the FTS5 full-text search string, matched over title and
	// abstract. Empty matches everything.
	Query string

	// Kind filters by record kind when set.
	Kind types.RecordKind

	// SinceYear keeps only records published in this year or later.
	SinceYear int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Search queries the cache with optional full-text search and filters.
// Full-text results come back in relevance order, otherwise rows are
// sorted by PMID.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]types.Record, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.kind, a.record
			FROM articles_fts
			JOIN articles a ON a.rowid = articles_fts.rowid
			WHERE articles_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT a.kind, a.record
			FROM articles a
			WHERE 1=1`)
	}

	if opts.Kind != "" {
		qb.WriteString(` AND a.kind = ?`)
		args = append(args, string(opts.Kind))
	}

	if opts.SinceYear > 0 {
		qb.WriteString(` AND a.pub_year >= ?`)
		args = append(args, opts.SinceYear)
	}

	if useFTS {
		qb.WriteString(` ORDER BY articles_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY a.pmid`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var kind, data string
		if err := rows.Scan(&kind, &data); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r, err := unmarshalRecord(kind, data)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
