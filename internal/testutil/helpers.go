// Package testutil holds fixtures and stage stubs shared by package tests.
package testutil

import (
	"os"
	"strings"
	"testing"
	"time"
)

// SampleMarkup is a small newsletter post body
const SampleMarkup = `<div class="body markup">
<h2>Good morning, neighbours</h2>
<p>The farmers market returns to Main Street this Saturday with twenty new stalls.</p>
<figure><img src="market.jpg"><figcaption>Last year's market</figcaption></figure>
<p>Expect light rain on Wednesday and sunshine for the weekend.</p>
<p><a href="https://example.substack.com/subscribe">Subscribe</a></p>
<p>Type your email...</p>
</div>`

// FixedClock returns a clock that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertContainsAll checks that s contains every substring
func AssertContainsAll(t *testing.T, s string, substrings ...string) {
	t.Helper()

	for _, sub := range substrings {
		if !strings.Contains(s, sub) {
			t.Errorf("Expected output to contain %q\nGot:\n%s", sub, s)
		}
	}
}
