// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store caches fetched PubMed records in SQLite so result sets
// can be re-read, searched, and turned into graphs without touching the
// network again. Records are kept lossless as JSON with the searchable
// fields projected into indexed columns.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubnet/pkg/types"
)

const defaultDBFile = "pubnet.db"

// Store manages the article cache SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the cache database at cfg.Path, creating the
// schema if it does not exist.
func Open(cfg types.CacheConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			pmid TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT,
			abstract TEXT,
			pub_year INTEGER,
			record TEXT NOT NULL,
			fetched_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_kind ON articles(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_pub_year ON articles(pub_year)`,
		`CREATE TABLE IF NOT EXISTS queries (
			query_hash TEXT PRIMARY KEY,
			term TEXT NOT NULL,
			ids TEXT NOT NULL,
			total INTEGER NOT NULL,
			fetched_at TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, abstract, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO articles_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveRecords upserts records into the cache in one transaction and
// returns the number written. Refetched records replace their previous
// rows.
func (s *Store) SaveRecords(ctx context.Context, records []types.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (pmid, kind, title, abstract, pub_year, record, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pmid) DO UPDATE SET
			kind=excluded.kind, title=excluded.title, abstract=excluded.abstract,
			pub_year=excluded.pub_year, record=excluded.record, fetched_at=excluded.fetched_at`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	saved := 0
	for _, r := range records {
		if r.RecordID() == "" {
			continue
		}
		data, err := json.Marshal(r)
		if err != nil {
			return saved, fmt.Errorf("marshaling record %s: %w", r.RecordID(), err)
		}
		year := 0
		if d := r.RecordDate(); !d.IsZero() {
			year = d.Year()
		}
		_, err = stmt.ExecContext(ctx,
			r.RecordID(), string(r.Kind()), r.RecordTitle(), recordAbstract(r),
			year, string(data), now,
		)
		if err != nil {
			return saved, fmt.Errorf("inserting record %s: %w", r.RecordID(), err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("committing: %w", err)
	}
	return saved, nil
}

func recordAbstract(r types.Record) string {
	switch rec := r.(type) {
	case *types.Article:
		return rec.Abstract
	case *types.Book:
		return rec.Abstract
	}
	return ""
}

// SaveQuery memoizes a query term with the PMIDs it resolved to.
func (s *Store) SaveQuery(ctx context.Context, term string, ids []string, total int) error {
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshaling id list: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO queries (query_hash, term, ids, total, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(query_hash) DO UPDATE SET
			term=excluded.term, ids=excluded.ids, total=excluded.total, fetched_at=excluded.fetched_at`,
		queryHash(term), term, string(idsJSON), total,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving query: %w", err)
	}
	return nil
}

// LookupQuery returns the memoized PMIDs and total for term. found is
// false when the term has never been saved.
func (s *Store) LookupQuery(ctx context.Context, term string) (ids []string, total int, found bool, err error) {
	var idsJSON string
	err = s.db.QueryRowContext(ctx,
		`SELECT ids, total FROM queries WHERE query_hash = ?`, queryHash(term),
	).Scan(&idsJSON, &total)
	if err == sql.ErrNoRows {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("looking up query: %w", err)
	}
	if err := json.Unmarshal([]byte(idsJSON), &ids); err != nil {
		return nil, 0, false, fmt.Errorf("parsing cached id list: %w", err)
	}
	return ids, total, true, nil
}

// queryHash keys the memoization table. Case and surrounding whitespace
// do not distinguish terms.
func queryHash(term string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(term))))
	return hex.EncodeToString(sum[:])
}

// Records loads cached records by PMID, preserving the order of pmids.
// IDs absent from the cache are skipped.
func (s *Store) Records(ctx context.Context, pmids []string) ([]types.Record, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(pmids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(pmids))
	for i, id := range pmids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT pmid, kind, record FROM articles WHERE pmid IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]types.Record, len(pmids))
	for rows.Next() {
		var pmid, kind, data string
		if err := rows.Scan(&pmid, &kind, &data); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r, err := unmarshalRecord(kind, data)
		if err != nil {
			return nil, err
		}
		byID[pmid] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(byID))
	for _, id := range pmids {
		if r, ok := byID[id]; ok {
			records = append(records, r)
		}
	}
	return records, nil
}

func unmarshalRecord(kind, data string) (types.Record, error) {
	switch types.RecordKind(kind) {
	case types.KindPaper:
		var a types.Article
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			return nil, fmt.Errorf("parsing cached paper: %w", err)
		}
		return &a, nil
	case types.KindBook:
		var b types.Book
		if err := json.Unmarshal([]byte(data), &b); err != nil {
			return nil, fmt.Errorf("parsing cached book: %w", err)
		}
		return &b, nil
	}
	return nil, fmt.Errorf("unknown cached record kind %q", kind)
}

// Stats summarizes cache contents.
type Stats struct {
	Records int
	Papers  int
	Books   int
	Queries int
}

// Stats counts cached records by kind and memoized queries.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	rows, err := s.db.QueryContext(ctx, `SELECT kind, count(*) FROM articles GROUP BY kind`)
	if err != nil {
		return st, fmt.Errorf("counting records: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return st, fmt.Errorf("scanning count: %w", err)
		}
		st.Records += n
		switch types.RecordKind(kind) {
		case types.KindPaper:
			st.Papers = n
		case types.KindBook:
			st.Books = n
		}
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM queries`,
	).Scan(&st.Queries); err != nil {
		return st, fmt.Errorf("counting queries: %w", err)
	}
	return st, nil
}
