package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubnet/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the Entrez client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// Tool is the tool name reported to NCBI with every request.
	Tool string `json:"tool" yaml:"tool"`

	// Email is the contact address reported to NCBI with every request.
	Email string `json:"email" yaml:"email"`

	// APIKey is an optional NCBI API key. Requests carry it when set and
	// the rate budget rises from 3 to 10 requests per second.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the default maximum number of records to retrieve
	// per query (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// StartYear bounds searches to publications from January 1 of this
	// year onward. Zero means no lower bound.
	StartYear int `json:"start_year,omitempty" yaml:"start_year,omitempty"`

	// BatchDelay is an extra pause between consecutive fetch batches,
	// on top of the request rate budget (default 0).
	BatchDelay time.Duration `json:"batch_delay,omitempty" yaml:"batch_delay,omitempty"`
}

// CacheConfig holds settings for the article cache.
type CacheConfig struct {
	// Path is the SQLite database file path (e.g. "pubnet.db").
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default maximum number of cache query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// GraphConfig holds settings for co-authorship graph construction and export.
type GraphConfig struct {
	// KeepSelfLoops keeps edges pairing an author name with itself.
	// PubMed occasionally lists the same rendered name twice on one
	// article; by default such pairs are dropped.
	KeepSelfLoops bool `json:"keep_self_loops" yaml:"keep_self_loops"`

	// DropIsolated omits nodes with no edges from exports.
	DropIsolated bool `json:"drop_isolated" yaml:"drop_isolated"`

	// MinWeight omits edges below this weight from exports. Zero or one
	// keeps every edge.
	MinWeight int `json:"min_weight" yaml:"min_weight"`
}
