package sitechat

import "time"

// Config holds the tunable parameters of the retrieval pipeline.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// TargetDomain is the single website the assistant searches and cites,
	// e.g. "lafayette.edu".
	TargetDomain string

	// MaxResultsPerQuery caps how many search results are taken per query.
	MaxResultsPerQuery int

	// MaxTotalDocuments caps how many documents survive ranking.
	MaxTotalDocuments int

	// MaxTotalLength is the character budget for the assembled context.
	MaxTotalLength int

	// MaxExcerptLength is the character budget for a single extracted page.
	MaxExcerptLength int

	// FetchTimeout bounds a single page fetch.
	FetchTimeout time.Duration

	// MaxRetries is the number of retries after a failed fetch attempt.
	MaxRetries int

	// RateLimitDelay is the minimum gap between fetches to the same domain.
	RateLimitDelay time.Duration

	// HistoryWindow caps how many exchanges of conversation history are
	// retained and passed to the planner and the model.
	HistoryWindow int

	// Concurrency bounds the fetch worker pool.
	Concurrency int

	// RequestTimeout bounds one full question/answer cycle.
	RequestTimeout time.Duration
}

// DefaultConfig returns a Config with conservative defaults suitable for
// polite scraping of a public website.
func DefaultConfig() Config {
	return Config{
		MaxResultsPerQuery: 3,
		MaxTotalDocuments:  4,
		MaxTotalLength:     4000,
		MaxExcerptLength:   1500,
		FetchTimeout:       10 * time.Second,
		MaxRetries:         3,
		RateLimitDelay:     time.Second,
		HistoryWindow:      20,
		Concurrency:        4,
		RequestTimeout:     45 * time.Second,
	}
}

// RetryDelays returns the backoff schedule implied by MaxRetries:
// 1s, 2s, 4s, doubling per attempt.
func (c Config) RetryDelays() []time.Duration {
	delays := make([]time.Duration, 0, c.MaxRetries)
	d := time.Second
	for i := 0; i < c.MaxRetries; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// Validate returns an error if the config contains invalid fields.
func (c Config) Validate() error {
	if c.TargetDomain == "" {
		return Errorf(EINVALID, "target domain required")
	}
	if c.MaxResultsPerQuery <= 0 {
		return Errorf(EINVALID, "max results per query must be positive")
	}
	if c.MaxTotalDocuments <= 0 {
		return Errorf(EINVALID, "max total documents must be positive")
	}
	if c.MaxTotalLength <= 0 {
		return Errorf(EINVALID, "max total length must be positive")
	}
	if c.FetchTimeout <= 0 {
		return Errorf(EINVALID, "fetch timeout must be positive")
	}
	if c.HistoryWindow <= 0 {
		return Errorf(EINVALID, "history window must be positive")
	}
	return nil
}
