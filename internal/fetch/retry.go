package fetch

import (
	"context"
	"math/rand"
	"net/http"
	"time"
)

// userAgents is the pool rotated through by the retrying feed strategy
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
}

// RetryPolicy controls the retrying feed strategy. Attempt numbers start at 0.
type RetryPolicy struct {
	MaxAttempts int
	Delay       func(attempt int) time.Duration
	Header      func(attempt int) http.Header
}

// DefaultRetryPolicy makes 3 attempts with a random User-Agent each time
// and a random 1-3s pause before every attempt after the first.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: 3,
		Delay:       RandomDelay(time.Second, 3*time.Second),
		Header:      RandomUserAgentHeader,
	}
}

// NoDelayPolicy retries without pausing and with fixed headers
func NoDelayPolicy(attempts int) *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: attempts,
		Delay:       func(int) time.Duration { return 0 },
		Header:      func(int) http.Header { return browserHeader(userAgents[0]) },
	}
}

// RandomDelay returns a delay function picking uniformly in [lo, hi]
// for every attempt after the first
func RandomDelay(lo, hi time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt == 0 {
			return 0
		}
		if hi <= lo {
			return lo
		}
		return lo + time.Duration(rand.Int63n(int64(hi-lo)+1))
	}
}

// RandomUserAgentHeader picks a browser User-Agent from the pool
func RandomUserAgentHeader(int) http.Header {
	return browserHeader(userAgents[rand.Intn(len(userAgents))])
}

func (p *RetryPolicy) attempts() int {
	if p == nil || p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p *RetryPolicy) delay(attempt int) time.Duration {
	if p == nil || p.Delay == nil {
		return 0
	}
	return p.Delay(attempt)
}

func (p *RetryPolicy) header(attempt int) http.Header {
	if p == nil || p.Header == nil {
		return browserHeader(userAgents[0])
	}
	return p.Header(attempt)
}

// browserHeader returns request headers resembling a desktop browser
func browserHeader(userAgent string) http.Header {
	h := http.Header{}
	h.Set("User-Agent", userAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.8,*/*;q=0.7")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	return h
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
