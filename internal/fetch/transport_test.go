package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/newscast/internal/logging"
)

func TestGuardedTransport_BreakerOpensOnRefusals(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: newGuardedTransport(nil, 0, 2, logging.Discard()),
	}

	for i := 0; i < 2; i++ {
		_, err := get(context.Background(), client, srv.URL, nil)
		if code := statusCode(err); code != http.StatusForbidden {
			t.Fatalf("request %d: status = %d, want 403 (err %v)", i+1, code, err)
		}
	}

	_, err := get(context.Background(), client, srv.URL, nil)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("third request error = %v, want open circuit", err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("server hits = %d, want 2", n)
	}
}

func TestGuardedTransport_NotFoundDoesNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := &http.Client{Transport: newGuardedTransport(nil, 0, 1, logging.Discard())}
	for i := 0; i < 3; i++ {
		_, err := get(context.Background(), client, srv.URL, nil)
		if code := statusCode(err); code != http.StatusNotFound {
			t.Fatalf("request %d: status = %d, want 404 (err %v)", i+1, code, err)
		}
	}
}

func TestCountsAsFailure(t *testing.T) {
	tests := map[int]bool{
		http.StatusOK:                  false,
		http.StatusNotFound:            false,
		http.StatusForbidden:           true,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
	}
	for code, want := range tests {
		if got := countsAsFailure(code); got != want {
			t.Errorf("countsAsFailure(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestRetryPolicyDefaults(t *testing.T) {
	var nilPolicy *RetryPolicy
	if nilPolicy.attempts() != 1 {
		t.Errorf("nil policy attempts = %d, want 1", nilPolicy.attempts())
	}

	p := DefaultRetryPolicy()
	if p.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", p.MaxAttempts)
	}
	if d := p.delay(0); d != 0 {
		t.Errorf("first attempt delay = %v, want 0", d)
	}
	for i := 1; i < 20; i++ {
		if d := p.delay(i); d < time.Second || d > 3*time.Second {
			t.Fatalf("delay(%d) = %v, want within [1s, 3s]", i, d)
		}
	}
	if ua := p.header(1).Get("User-Agent"); ua == "" {
		t.Error("retry header has no User-Agent")
	}
}

func TestSleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleep() error = %v, want context.Canceled", err)
	}
}
