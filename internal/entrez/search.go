// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// maxRetrievable is the E-utilities cap on how many IDs one esearch call
// can return. Queries matching more records than this are enumerated by
// splitting the search into date windows.
const maxRetrievable = 10000

const searchDateFmt = "2006/01/02"

// Count returns the total number of PubMed records matching query,
// without retrieving any of them.
func (c *Client) Count(ctx context.Context, query string) (int, error) {
	params := url.Values{}
	params.Set("term", query)
	params.Set("retmax", "1")
	count, _, err := c.esearch(ctx, params)
	return count, err
}

// SearchIDs retrieves the PMIDs matching query. max caps how many IDs
// are returned; max <= 0 retrieves everything. An empty result set is
// not an error.
func (c *Client) SearchIDs(ctx context.Context, query string, max int) ([]string, error) {
	ids, _, err := c.searchIDs(ctx, query, max, c.cfg.StartYear)
	return ids, err
}

// searchIDs implements SearchIDs and additionally reports the query's
// total match count. startYear bounds the search when positive and seeds
// the date-window split when the result set exceeds the esearch cap.
func (c *Client) searchIDs(ctx context.Context, query string, max, startYear int) ([]string, int, error) {
	var from, to time.Time
	if startYear > 0 {
		from = time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
		to = todayUTC()
	}

	retmax := maxRetrievable
	if max > 0 && max < retmax {
		retmax = max
	}
	count, ids, err := c.searchWindow(ctx, query, from, to, retmax)
	if err != nil {
		return nil, 0, fmt.Errorf("searching %q: %w", query, err)
	}

	// A single esearch suffices when the result set fits under the cap,
	// or when the caller's cap does.
	if count <= maxRetrievable || (max > 0 && max <= maxRetrievable) {
		if max > 0 && len(ids) > max {
			ids = ids[:max]
		}
		return ids, count, nil
	}

	// Too many matches for one call. Split the date range into windows
	// small enough to enumerate, oldest first.
	if from.IsZero() {
		from = time.Date(defaultStartYear, 1, 1, 0, 0, 0, 0, time.UTC)
		to = todayUTC()
	}
	all, err := c.splitWindow(ctx, query, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("searching %q: %w", query, err)
	}
	ids = dedupeIDs(all)
	if max > 0 && len(ids) > max {
		ids = ids[:max]
	}
	return ids, count, nil
}

// splitWindow recursively halves [from, to] until each window's match
// count fits under the esearch cap, concatenating the windows' IDs. A
// window that cannot shrink below one day returns what the cap allows.
func (c *Client) splitWindow(ctx context.Context, query string, from, to time.Time) ([]string, error) {
	count, ids, err := c.searchWindow(ctx, query, from, to, maxRetrievable)
	if err != nil {
		return nil, err
	}
	if count <= maxRetrievable || !from.Before(to) {
		return ids, nil
	}

	mid := midpoint(from, to)
	left, err := c.splitWindow(ctx, query, from, mid)
	if err != nil {
		return nil, err
	}
	right, err := c.splitWindow(ctx, query, mid.AddDate(0, 0, 1), to)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// searchWindow runs one esearch over [from, to] inclusive. Zero times
// leave the search undated. It returns the window's total match count
// and up to retmax IDs.
func (c *Client) searchWindow(ctx context.Context, query string, from, to time.Time, retmax int) (int, []string, error) {
	params := url.Values{}
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(retmax))
	if !from.IsZero() {
		params.Set("mindate", from.Format(searchDateFmt))
		params.Set("maxdate", to.Format(searchDateFmt))
	}
	return c.esearch(ctx, params)
}

// esearch performs the request and decodes the JSON envelope. The count
// arrives as a string and is parsed here.
func (c *Client) esearch(ctx context.Context, params url.Values) (int, []string, error) {
	body, err := c.get(ctx, esearchPath, params, "json")
	if err != nil {
		return 0, nil, err
	}

	var sr esearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return 0, nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	count, err := strconv.Atoi(sr.Result.Count)
	if err != nil {
		return 0, nil, fmt.Errorf("parsing esearch count %q: %w", sr.Result.Count, err)
	}
	return count, sr.Result.IDList, nil
}

// midpoint returns the UTC midnight halfway between from and to.
func midpoint(from, to time.Time) time.Time {
	mid := from.Add(to.Sub(from) / 2)
	return time.Date(mid.Year(), mid.Month(), mid.Day(), 0, 0, 0, 0, time.UTC)
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// dedupeIDs removes duplicate IDs preserving first-seen order. Records
// whose dates straddle a window boundary can be reported by adjacent
// windows.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Entrez esearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}
