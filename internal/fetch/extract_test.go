package fetch

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractArticle(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		want    string
		wantErr error
	}{
		{
			name: "available content wins",
			page: `<html><body><article><div class="available-content"><p>Body</p></div><footer>x</footer></article></body></html>`,
			want: "<p>Body</p>",
		},
		{
			name: "falls back to article",
			page: `<html><body><nav>menu</nav><article><h1>Title</h1><p>Text</p></article></body></html>`,
			want: "<h1>Title</h1><p>Text</p>",
		},
		{
			name:    "empty page",
			page:    `<html><body>   </body></html>`,
			wantErr: ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractArticle([]byte(tt.page))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("extractArticle() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractArticle() error = %v", err)
			}
			if strings.TrimSpace(got) != tt.want {
				t.Errorf("extractArticle() = %q, want %q", got, tt.want)
			}
		})
	}
}
