package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vincent-petithory/dataurl"
)

// DownloadTimeout bounds the download of a provider-hosted audio file
const DownloadTimeout = 5 * time.Minute

// ErrTooLarge is returned when downloaded audio exceeds the configured limit
var ErrTooLarge = errors.New("audio exceeds maximum size")

// outputWriter persists whatever shape a speech service returns
type outputWriter struct {
	client   *http.Client
	maxBytes int64
}

func newOutputWriter(config *Config) *outputWriter {
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DownloadTimeout}
	}
	return &outputWriter{client: client, maxBytes: config.MaxDownloadBytes}
}

// write stores output in path. Accepted shapes are a stream, a URL string
// (http(s) or data:), raw bytes, or a list whose first element is one of those.
func (w *outputWriter) write(ctx context.Context, output any, path string) error {
	switch v := output.(type) {
	case nil:
		return fmt.Errorf("speech service returned no output")
	case io.Reader:
		if c, ok := v.(io.Closer); ok {
			defer c.Close()
		}
		return w.copyToFile(v, path)
	case []byte:
		if len(v) == 0 {
			return fmt.Errorf("speech service returned empty audio")
		}
		return writeFile(path, v)
	case string:
		return w.writeURL(ctx, strings.TrimSpace(v), path)
	case []string:
		if len(v) == 0 {
			return fmt.Errorf("speech service returned an empty list")
		}
		return w.write(ctx, v[0], path)
	case []any:
		if len(v) == 0 {
			return fmt.Errorf("speech service returned an empty list")
		}
		return w.write(ctx, v[0], path)
	default:
		return fmt.Errorf("unexpected speech output type %T", output)
	}
}

func (w *outputWriter) writeURL(ctx context.Context, rawURL, path string) error {
	if strings.HasPrefix(rawURL, "data:") {
		decoded, err := dataurl.DecodeString(rawURL)
		if err != nil {
			return fmt.Errorf("failed to decode data URL: %w", err)
		}
		return w.write(ctx, decoded.Data, path)
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return fmt.Errorf("unexpected speech output %q", truncate(rawURL, 64))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download audio: HTTP %d", resp.StatusCode)
	}
	return w.copyToFile(resp.Body, path)
}

// copyToFile streams r into path, removing the file on any failure
func (w *outputWriter) copyToFile(r io.Reader, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	var written int64
	if w.maxBytes > 0 {
		written, err = io.Copy(file, io.LimitReader(r, w.maxBytes+1))
		if err == nil && written > w.maxBytes {
			err = fmt.Errorf("%w of %d bytes", ErrTooLarge, w.maxBytes)
		}
	} else {
		written, err = io.Copy(file, r)
	}
	if err == nil && written == 0 {
		err = fmt.Errorf("speech service returned empty audio")
	}
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		if errors.Is(err, ErrTooLarge) {
			return err
		}
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
