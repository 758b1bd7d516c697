// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entrez queries the NCBI Entrez E-utilities for PubMed records.
// A search resolves PMIDs via esearch, full records arrive from efetch in
// batches of 250, and results are materialized into plain record slices
// the caller can iterate any number of times.
package entrez

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/pubnet/internal/httputil"
	"github.com/pdiddy/pubnet/pkg/types"
)

// entrezAPIBase is the E-utilities endpoint root. Declared as a var so
// tests can substitute an httptest server.
var entrezAPIBase = "https://eutils.ncbi.nlm.nih.gov"

const (
	esearchPath = "/entrez/eutils/esearch.fcgi"
	efetchPath  = "/entrez/eutils/efetch.fcgi"
)

const (
	defaultTool    = "pubnet"
	defaultTimeout = 60 * time.Second

	// defaultStartYear is the floor for date-window splitting when no
	// start year is configured.
	defaultStartYear = 1900
)

// Client talks to the PubMed E-utilities. Construct it with NewClient and
// share one instance per process so the rate budget covers all requests.
type Client struct {
	client  *http.Client
	cfg     types.ClientConfig
	limiter *rate.Limiter
}

// NewClient returns a Client using httpClient for transport. A nil
// httpClient gets a fresh one with the configured timeout. The request
// rate budget is 3 requests per second, or 10 when cfg.APIKey is set.
func NewClient(cfg types.ClientConfig, httpClient *http.Client) *Client {
	if cfg.Tool == "" {
		cfg.Tool = defaultTool
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		client:  httpClient,
		cfg:     cfg,
		limiter: httputil.NewLimiter(cfg.APIKey != ""),
	}
}

// get performs one E-utilities request with the shared identification
// parameters applied. It waits for the rate budget before sending and
// retries 429 responses with backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values, retmode string) ([]byte, error) {
	params.Set("db", "pubmed")
	params.Set("retmode", retmode)
	params.Set("tool", c.cfg.Tool)
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := entrezAPIBase + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("PubMed API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
