// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pubnet/pkg/types"
)

// ParseRecords decodes an efetch PubmedArticleSet document into records,
// papers first, then books, matching PubMed's two article set members.
// skip drops one record kind; the count of dropped records is returned
// alongside the kept ones.
func ParseRecords(data []byte, skip Skip) ([]types.Record, int, error) {
	var set pubmedArticleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, 0, fmt.Errorf("parsing efetch response: %w", err)
	}

	var records []types.Record
	skipped := 0
	for _, pa := range set.Articles {
		if skip == SkipPapers {
			skipped++
			continue
		}
		records = append(records, buildArticle(pa))
	}
	for _, pb := range set.Books {
		if skip == SkipBooks {
			skipped++
			continue
		}
		records = append(records, buildBook(pb))
	}
	return records, skipped, nil
}

func buildArticle(pa pubmedArticle) *types.Article {
	abstract, methods, results, conclusions := buildAbstract(pa.MedlineCitation.Article.Abstract.Texts)
	return &types.Article{
		PubmedID:        strings.TrimSpace(pa.MedlineCitation.PMID),
		Title:           strings.TrimSpace(pa.MedlineCitation.Article.Title),
		Abstract:        abstract,
		Keywords:        filterEmpty(pa.MedlineCitation.Keywords),
		Journal:         strings.TrimSpace(pa.MedlineCitation.Article.Journal.Title),
		Methods:         methods,
		Results:         results,
		Conclusions:     conclusions,
		Copyrights:      strings.TrimSpace(pa.MedlineCitation.Article.Abstract.Copyright),
		DOI:             findArticleID(pa.PubmedData.ArticleIDs, "doi"),
		PublicationDate: pubmedHistoryDate(pa.PubmedData.History),
		Authors:         buildAuthors(pa.MedlineCitation.Article.Authors),
	}
}

func buildBook(pb pubmedBookArticle) *types.Book {
	doc := pb.Document
	abstract, _, _, _ := buildAbstract(doc.Abstract.Texts)
	return &types.Book{
		PubmedID:          findArticleID(doc.ArticleIDs, "pubmed"),
		Title:             strings.TrimSpace(doc.Book.Title),
		Abstract:          abstract,
		Copyrights:        strings.TrimSpace(doc.Abstract.Copyright),
		DOI:               findArticleID(doc.ArticleIDs, "doi"),
		ISBN:              strings.Join(filterEmpty(doc.Book.Isbn), "\n"),
		Language:          strings.TrimSpace(doc.Language),
		PublicationType:   strings.TrimSpace(doc.PublicationType),
		PublicationYear:   strings.TrimSpace(doc.Book.PubYear),
		Authors:           buildAuthors(doc.Book.Authors),
		Publisher:         strings.TrimSpace(doc.Book.Publisher),
		PublisherLocation: strings.TrimSpace(doc.Book.PublisherLocation),
		Sections:          flattenSections(doc.Sections, nil),
	}
}

// buildAbstract joins every abstract section into the full text and
// routes labeled sections into their dedicated fields. PubMed labels
// vary between singular and plural forms; both are accepted.
func buildAbstract(texts []abstractText) (full, methods, results, conclusions string) {
	var all, m, r, concl []string
	for _, t := range texts {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		all = append(all, text)
		switch strings.ToUpper(strings.TrimSpace(t.Label)) {
		case "METHOD", "METHODS":
			m = append(m, text)
		case "RESULT", "RESULTS":
			r = append(r, text)
		case "CONCLUSION", "CONCLUSIONS":
			concl = append(concl, text)
		}
	}
	sep := "\n"
	return strings.Join(all, sep), strings.Join(m, sep), strings.Join(r, sep), strings.Join(concl, sep)
}

func buildAuthors(authors []pubmedAuthor) []types.Author {
	if len(authors) == 0 {
		return nil
	}
	out := make([]types.Author, 0, len(authors))
	for _, a := range authors {
		author := types.Author{
			LastName:       strings.TrimSpace(a.LastName),
			ForeName:       strings.TrimSpace(a.ForeName),
			Initials:       strings.TrimSpace(a.Initials),
			CollectiveName: strings.TrimSpace(a.CollectiveName),
		}
		if len(a.Affiliations) > 0 {
			author.Affiliation = strings.TrimSpace(a.Affiliations[0])
		}
		out = append(out, author)
	}
	return out
}

// pubmedHistoryDate finds the date the record entered PubMed in the
// publication history. Zero when absent or unparseable.
func pubmedHistoryDate(dates []pubDate) time.Time {
	for _, d := range dates {
		if d.PubStatus != "pubmed" {
			continue
		}
		year, errY := strconv.Atoi(d.Year)
		month, errM := strconv.Atoi(d.Month)
		day, errD := strconv.Atoi(d.Day)
		if errY != nil || errM != nil || errD != nil {
			return time.Time{}
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

func findArticleID(ids []articleID, idType string) string {
	for _, id := range ids {
		if id.IDType == idType {
			return strings.TrimSpace(id.Value)
		}
	}
	return ""
}

func filterEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// flattenSections walks the section tree depth-first. Book sections nest
// arbitrarily deep; the flat list keeps document order.
func flattenSections(sections []bookSection, out []types.BookSection) []types.BookSection {
	for _, s := range sections {
		out = append(out, types.BookSection{
			Title:   strings.TrimSpace(s.Title),
			Chapter: strings.TrimSpace(s.Chapter),
		})
		out = flattenSections(s.Children, out)
	}
	return out
}

// PubMed efetch XML structures.
type pubmedArticleSet struct {
	Articles []pubmedArticle     `xml:"PubmedArticle"`
	Books    []pubmedBookArticle `xml:"PubmedBookArticle"`
}

type pubmedArticle struct {
	MedlineCitation medlineCitation `xml:"MedlineCitation"`
	PubmedData      pubmedData      `xml:"PubmedData"`
}

type medlineCitation struct {
	PMID     string         `xml:"PMID"`
	Article  medlineArticle `xml:"Article"`
	Keywords []string       `xml:"KeywordList>Keyword"`
}

type medlineArticle struct {
	Title    string          `xml:"ArticleTitle"`
	Journal  medlineJournal  `xml:"Journal"`
	Abstract medlineAbstract `xml:"Abstract"`
	Authors  []pubmedAuthor  `xml:"AuthorList>Author"`
}

type medlineJournal struct {
	Title string `xml:"Title"`
}

type medlineAbstract struct {
	Texts     []abstractText `xml:"AbstractText"`
	Copyright string         `xml:"CopyrightInformation"`
}

type abstractText struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

type pubmedAuthor struct {
	LastName       string   `xml:"LastName"`
	ForeName       string   `xml:"ForeName"`
	Initials       string   `xml:"Initials"`
	CollectiveName string   `xml:"CollectiveName"`
	Affiliations   []string `xml:"AffiliationInfo>Affiliation"`
}

type pubmedData struct {
	History    []pubDate   `xml:"History>PubMedPubDate"`
	ArticleIDs []articleID `xml:"ArticleIdList>ArticleId"`
}

type pubDate struct {
	PubStatus string `xml:"PubStatus,attr"`
	Year      string `xml:"Year"`
	Month     string `xml:"Month"`
	Day       string `xml:"Day"`
}

type articleID struct {
	IDType string `xml:"IdType,attr"`
	Value  string `xml:",chardata"`
}

type pubmedBookArticle struct {
	Document bookDocument `xml:"BookDocument"`
}

type bookDocument struct {
	ArticleIDs      []articleID     `xml:"ArticleIdList>ArticleId"`
	Book            bookInfo        `xml:"Book"`
	Abstract        medlineAbstract `xml:"Abstract"`
	Language        string          `xml:"Language"`
	PublicationType string          `xml:"PublicationType"`
	Sections        []bookSection   `xml:"Sections>Section"`
}

type bookInfo struct {
	Title             string         `xml:"BookTitle"`
	Isbn              []string       `xml:"Isbn"`
	PubYear           string         `xml:"PubDate>Year"`
	Publisher         string         `xml:"Publisher>PublisherName"`
	PublisherLocation string         `xml:"Publisher>PublisherLocation"`
	Authors           []pubmedAuthor `xml:"AuthorList>Author"`
}

type bookSection struct {
	Title    string        `xml:"SectionTitle"`
	Chapter  string        `xml:"LocationLabel"`
	Children []bookSection `xml:"Section"`
}
