package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/newscast/internal/logging"
)

const (
	// DefaultTimeout bounds every outbound request
	DefaultTimeout = 30 * time.Second

	// DefaultMinContentLength is the character count below which JSON
	// proxy content is assumed to be a teaser and the full post is refetched.
	DefaultMinContentLength = 1000

	// DefaultRequestsPerSecond paces outbound requests
	DefaultRequestsPerSecond = 2.0

	// DefaultBreakerThreshold is the number of consecutive refusals from one
	// host before its circuit opens
	DefaultBreakerThreshold = 6
)

// RawContent is the markup and canonical URL of the latest post
type RawContent struct {
	Markup    string
	SourceURL string
}

func (c *RawContent) valid() bool {
	return c != nil && strings.TrimSpace(c.Markup) != "" && strings.TrimSpace(c.SourceURL) != ""
}

// Strategy is one self-contained way of obtaining the latest post
type Strategy struct {
	Name  string
	Fetch func(ctx context.Context) (*RawContent, error)
}

// Config configures the default strategy chain
type Config struct {
	NewsletterURL     string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables pacing
	BreakerThreshold  uint32  // 0 disables the circuit breaker
	Retry             *RetryPolicy
	Proxies           []Proxy
	MinContentLength  int
	SessionCookie     string            // optional substack.sid for the posts API
	Transport         http.RoundTripper // nil uses http.DefaultTransport
}

// DefaultConfig returns the production settings for a newsletter
func DefaultConfig(newsletterURL string) *Config {
	return &Config{
		NewsletterURL:     newsletterURL,
		Timeout:           DefaultTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		BreakerThreshold:  DefaultBreakerThreshold,
		Retry:             DefaultRetryPolicy(),
		Proxies:           DefaultProxies(),
		MinContentLength:  DefaultMinContentLength,
	}
}

// Fetcher tries its strategies in order until one yields the latest post
type Fetcher struct {
	newsletterURL string
	site          *Site
	config        *Config
	client        *http.Client
	transport     *guardedTransport
	strategies    []Strategy
	logger        *log.Logger
}

// New creates a Fetcher with the default strategy chain
func New(config *Config, logger *log.Logger) (*Fetcher, error) {
	if config == nil {
		return nil, fmt.Errorf("fetch config is required")
	}
	site, err := ParseSite(config.NewsletterURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.WithPrefix("fetch")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := newGuardedTransport(config.Transport, config.RequestsPerSecond, config.BreakerThreshold, logger)
	f := &Fetcher{
		newsletterURL: config.NewsletterURL,
		site:          site,
		config:        config,
		logger:        logger,
		transport:     transport,
		client:        &http.Client{Timeout: timeout, Transport: transport},
	}
	f.strategies = []Strategy{
		{Name: "archive-api", Fetch: f.fetchArchive},
		{Name: "posts-api", Fetch: f.fetchPostsAPI},
		{Name: "rss", Fetch: f.fetchFeed},
		{Name: "rss-retry", Fetch: f.fetchFeedWithRetry},
		{Name: "rss-proxy", Fetch: f.fetchViaProxies},
	}
	return f, nil
}

// NewWithStrategies creates a Fetcher running the given strategies in order
func NewWithStrategies(newsletterURL string, logger *log.Logger, strategies ...Strategy) *Fetcher {
	if logger == nil {
		logger = logging.WithPrefix("fetch")
	}
	return &Fetcher{
		newsletterURL: newsletterURL,
		strategies:    strategies,
		logger:        logger,
	}
}

// StrategyNames lists the strategies in the order they are tried
func (f *Fetcher) StrategyNames() []string {
	names := make([]string, 0, len(f.strategies))
	for _, s := range f.strategies {
		names = append(names, s.Name)
	}
	return names
}

// Fetch returns the latest post, or an *ExhaustedError once every strategy failed
func (f *Fetcher) Fetch(ctx context.Context) (*RawContent, error) {
	failures := make([]*StrategyError, 0, len(f.strategies))

	for i, s := range f.strategies {
		f.logger.Debug("trying strategy", "strategy", s.Name, "step", fmt.Sprintf("%d/%d", i+1, len(f.strategies)))

		// Breaker state never carries over from one strategy to the next
		if f.transport != nil {
			f.transport.reset()
		}

		content, err := s.Fetch(ctx)
		if err == nil && content.valid() {
			f.logger.Info("fetched latest post", "strategy", s.Name, "url", content.SourceURL, "chars", len(content.Markup))
			return content, nil
		}
		if err == nil {
			err = ErrEmptyContent
		}

		failure := &StrategyError{Strategy: s.Name, Err: err}
		failures = append(failures, failure)
		f.logFailure(failure)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch %s: %w", f.newsletterURL, ctxErr)
		}
	}

	return nil, &ExhaustedError{NewsletterURL: f.newsletterURL, Failures: failures}
}

func (f *Fetcher) logFailure(failure *StrategyError) {
	keyvals := []interface{}{"strategy", failure.Strategy}
	if code := statusCode(failure.Err); code != 0 {
		keyvals = append(keyvals, "status", code)
	}
	keyvals = append(keyvals, "error_type", fmt.Sprintf("%T", rootCause(failure.Err)), "error", failure.Err)
	f.logger.Warn("strategy failed", keyvals...)
}

// rootCause returns the innermost wrapped error
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func (f *Fetcher) minContentLength() int {
	if f.config == nil || f.config.MinContentLength <= 0 {
		return DefaultMinContentLength
	}
	return f.config.MinContentLength
}
