// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubnet pipeline:
// the PubMed record model (articles, books, authors), the record kind
// enum, and the configuration structs consumed by the client, cache,
// and graph stages.
package types

import (
	"fmt"
	"strings"
	"time"
)

// RecordKind identifies the PubMed record subtype.
type RecordKind string

const (
	KindPaper RecordKind = "paper"
	KindBook  RecordKind = "book"
)

// ParseRecordKind maps a user-supplied kind name to a RecordKind.
// Matching is case-insensitive and tolerates surrounding whitespace.
func ParseRecordKind(s string) (RecordKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paper":
		return KindPaper, nil
	case "book":
		return KindBook, nil
	default:
		return "", fmt.Errorf("unknown record kind %q (want \"paper\" or \"book\")", s)
	}
}

// Author is one contributor entry on a PubMed record.
type Author struct {
	// LastName is the author surname.
	LastName string `json:"lastname" yaml:"lastname"`

	// ForeName is the author given name.
	ForeName string `json:"firstname" yaml:"firstname"`

	// Initials are the author initials as listed by PubMed.
	Initials string `json:"initials,omitempty" yaml:"initials,omitempty"`

	// Affiliation is the first affiliation listed for the author, when present.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// CollectiveName is set for group authors (consortia, working groups);
	// when present the personal name fields are empty.
	CollectiveName string `json:"collective_name,omitempty" yaml:"collective_name,omitempty"`
}

// DisplayName renders the author as "LastName ForeName", the form the
// co-authorship graph uses as a node label. The collective name wins when
// set. Authors with a single known name part render without a stray space.
func (a Author) DisplayName() string {
	if a.CollectiveName != "" {
		return a.CollectiveName
	}
	parts := make([]string, 0, 2)
	if a.LastName != "" {
		parts = append(parts, a.LastName)
	}
	if a.ForeName != "" {
		parts = append(parts, a.ForeName)
	}
	return strings.Join(parts, " ")
}

// Record is the sum type over the PubMed record kinds. Both *Article and
// *Book implement it; consumers switch on Kind rather than type-asserting.
// Records are immutable once parsed.
type Record interface {
	// Kind reports the record subtype.
	Kind() RecordKind

	// RecordID is the PubMed identifier (PMID).
	RecordID() string

	// RecordTitle is the article or book title.
	RecordTitle() string

	// RecordAuthors lists the contributors in source order.
	RecordAuthors() []Author

	// RecordDate is the publication date. Zero when the source carries
	// no parseable date.
	RecordDate() time.Time
}

// Article holds the metadata of a PubMed journal article.
type Article struct {
	// PubmedID is the PMID from the MedlineCitation.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the full abstract text, labeled sections joined by newlines.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Keywords are the author-supplied keywords. Empty entries from the
	// source are filtered at parse time.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Journal is the full journal title.
	Journal string `json:"journal" yaml:"journal"`

	// Methods holds the abstract section labeled METHOD or METHODS, when present.
	Methods string `json:"methods,omitempty" yaml:"methods,omitempty"`

	// Conclusions holds the abstract section labeled CONCLUSION or CONCLUSIONS.
	Conclusions string `json:"conclusions,omitempty" yaml:"conclusions,omitempty"`

	// Results holds the abstract section labeled RESULT or RESULTS.
	Results string `json:"results,omitempty" yaml:"results,omitempty"`

	// Copyrights is the copyright statement attached to the abstract.
	Copyrights string `json:"copyrights,omitempty" yaml:"copyrights,omitempty"`

	// DOI is the digital object identifier, when assigned.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// PublicationDate is the date the article entered PubMed. Zero when
	// the history carries no parseable date.
	PublicationDate time.Time `json:"publication_date" yaml:"publication_date"`

	// Authors lists the contributors in source order.
	Authors []Author `json:"authors" yaml:"authors"`
}

func (a *Article) Kind() RecordKind        { return KindPaper }
func (a *Article) RecordID() string        { return a.PubmedID }
func (a *Article) RecordTitle() string     { return a.Title }
func (a *Article) RecordAuthors() []Author { return a.Authors }
func (a *Article) RecordDate() time.Time   { return a.PublicationDate }

// BookSection is one section entry of a PubMed book record.
type BookSection struct {
	// Title is the section title.
	Title string `json:"title" yaml:"title"`

	// Chapter is the location label of the section, when present.
	Chapter string `json:"chapter,omitempty" yaml:"chapter,omitempty"`
}

// Book holds the metadata of a PubMed book record (NCBI Bookshelf).
type Book struct {
	// PubmedID is the PMID from the BookDocument.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the book title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the full abstract text, sections joined by newlines.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Copyrights is the copyright statement attached to the abstract.
	Copyrights string `json:"copyrights,omitempty" yaml:"copyrights,omitempty"`

	// DOI is the digital object identifier, when assigned.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// ISBN is the international standard book number, when assigned.
	ISBN string `json:"isbn,omitempty" yaml:"isbn,omitempty"`

	// Language is the publication language code (e.g. "eng").
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// PublicationType describes the record type as reported by PubMed.
	PublicationType string `json:"publication_type,omitempty" yaml:"publication_type,omitempty"`

	// PublicationYear is the year of publication. Book records carry only
	// a year, not a full date.
	PublicationYear string `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`

	// Authors lists the contributors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// Publisher is the publisher name.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// PublisherLocation is the publisher location.
	PublisherLocation string `json:"publisher_location,omitempty" yaml:"publisher_location,omitempty"`

	// Sections lists the book sections, when reported.
	Sections []BookSection `json:"sections,omitempty" yaml:"sections,omitempty"`
}

func (b *Book) Kind() RecordKind        { return KindBook }
func (b *Book) RecordID() string        { return b.PubmedID }
func (b *Book) RecordTitle() string     { return b.Title }
func (b *Book) RecordAuthors() []Author { return b.Authors }

// RecordDate maps the publication year to January 1 of that year, the
// finest granularity book records provide. Zero when the year is absent
// or unparseable.
func (b *Book) RecordDate() time.Time {
	t, err := time.Parse("2006", b.PublicationYear)
	if err != nil {
		return time.Time{}
	}
	return t
}
