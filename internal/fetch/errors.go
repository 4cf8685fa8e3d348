package fetch

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNoPosts is returned when a source answers but lists no posts
	ErrNoPosts = errors.New("no posts found")

	// ErrEmptyContent is returned when a post resolves to empty markup
	ErrEmptyContent = errors.New("post content is empty")

	// ErrExhausted matches any *ExhaustedError via errors.Is
	ErrExhausted = errors.New("all retrieval strategies failed")
)

// StatusError reports a non-2xx HTTP response
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// StrategyError records why one strategy failed
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// ExhaustedError is the terminal error returned once every strategy failed
type ExhaustedError struct {
	NewsletterURL string
	Failures      []*StrategyError
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to fetch the latest post from %s: all %d retrieval strategies failed", e.NewsletterURL, len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  - %s", f.Error())
	}
	b.WriteString("\nnetwork restrictions in this environment (CI runners, proxies, firewalls) are the likely cause")
	return b.String()
}

// Is lets errors.Is(err, ErrExhausted) match
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// statusCode extracts the HTTP status from an error chain, or 0
func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
