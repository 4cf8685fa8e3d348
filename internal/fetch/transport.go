package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	// maxBodyBytes caps how much of any response body is read
	maxBodyBytes = 10 * 1024 * 1024

	breakerOpenTimeout = 60 * time.Second
)

// errRefused marks responses the breaker should count as host failures
var errRefused = errors.New("host refused request")

// guardedTransport paces outbound requests and keeps a circuit breaker per host
type guardedTransport struct {
	next      http.RoundTripper
	limiter   *rate.Limiter
	threshold uint32
	logger    *log.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func newGuardedTransport(next http.RoundTripper, rps float64, threshold uint32, logger *log.Logger) *guardedTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	limit := rate.Inf
	burst := 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = int(rps)
		if burst < 1 {
			burst = 1
		}
	}
	return &guardedTransport{
		next:      next,
		limiter:   rate.NewLimiter(limit, burst),
		threshold: threshold,
		logger:    logger,
		breakers:  make(map[string]*gobreaker.CircuitBreaker),
	}
}

// RoundTrip implements http.RoundTripper
func (t *guardedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	cb := t.breaker(req.URL.Host)
	if cb == nil {
		return t.next.RoundTrip(req)
	}

	var resp *http.Response
	_, err := cb.Execute(func() (interface{}, error) {
		r, err := t.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		resp = r
		if countsAsFailure(r.StatusCode) {
			return nil, errRefused
		}
		return nil, nil
	})
	if errors.Is(err, errRefused) {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// reset forgets every breaker so the next strategy starts with closed circuits
func (t *guardedTransport) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.breakers = make(map[string]*gobreaker.CircuitBreaker)
}

func (t *guardedTransport) breaker(host string) *gobreaker.CircuitBreaker {
	if t.threshold == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if cb, ok := t.breakers[host]; ok {
		return cb
	}
	threshold := t.threshold
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if t.logger != nil {
				t.logger.Warn("circuit breaker state change", "host", name, "from", from.String(), "to", to.String())
			}
		},
	})
	t.breakers[host] = cb
	return cb
}

// countsAsFailure reports statuses that mean the host is refusing us
func countsAsFailure(code int) bool {
	return code == http.StatusForbidden || code == http.StatusTooManyRequests || code >= 500
}

// get issues a GET and returns the body of a 2xx response
func get(ctx context.Context, client *http.Client, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return body, nil
}
