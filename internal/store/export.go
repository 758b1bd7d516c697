// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubnet/pkg/types"
)

// Export is the cache dump document, papers and books separated so both
// kinds survive the round trip.
type Export struct {
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Count      int              `json:"count" yaml:"count"`
	Papers     []*types.Article `json:"papers,omitempty" yaml:"papers,omitempty"`
	Books      []*types.Book    `json:"books,omitempty" yaml:"books,omitempty"`
}

const exportLimit = 100000

// ExportYAML writes every cached record to a YAML file at path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	export, err := s.exportDoc(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every cached record to a JSON file at path.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	export, err := s.exportDoc(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportDoc(ctx context.Context) (*Export, error) {
	records, err := s.Search(ctx, SearchOptions{MaxResults: exportLimit})
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	export := &Export{ExportedAt: time.Now().UTC(), Count: len(records)}
	for _, r := range records {
		switch rec := r.(type) {
		case *types.Article:
			export.Papers = append(export.Papers, rec)
		case *types.Book:
			export.Books = append(export.Books, rec)
		}
	}
	return export, nil
}
