package fetch

import (
	"fmt"
	"net/url"
	"strings"
)

// Site describes a newsletter host and the endpoints derived from it
type Site struct {
	Base      string // scheme://host without trailing slash
	Host      string
	Subdomain string // first label for *.substack.com hosts, empty otherwise
}

// ParseSite validates a newsletter URL such as https://example.substack.com
func ParseSite(rawURL string) (*Site, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("newsletter URL is required")
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid newsletter URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid newsletter URL %q: unsupported scheme %q", rawURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid newsletter URL %q: missing host", rawURL)
	}

	site := &Site{
		Base: u.Scheme + "://" + u.Host,
		Host: u.Hostname(),
	}
	if strings.HasSuffix(site.Host, ".substack.com") {
		site.Subdomain = strings.TrimSuffix(site.Host, ".substack.com")
	}
	return site, nil
}

// ArchiveURL lists the newest posts, newest first
func (s *Site) ArchiveURL(limit int) string {
	return fmt.Sprintf("%s/api/v1/archive?sort=new&search=&offset=0&limit=%d", s.Base, limit)
}

// PostAPIURL returns the JSON document of a single post
func (s *Site) PostAPIURL(slug string) string {
	return fmt.Sprintf("%s/api/v1/posts/%s", s.Base, url.PathEscape(slug))
}

// PostsAPIURL is the internal posts listing used by the web app
func (s *Site) PostsAPIURL(limit int) string {
	return fmt.Sprintf("%s/api/v1/posts?limit=%d", s.Base, limit)
}

// PostURL is the public web page of a post
func (s *Site) PostURL(slug string) string {
	return fmt.Sprintf("%s/p/%s", s.Base, url.PathEscape(slug))
}

// FeedURL is the RSS feed of the newsletter
func (s *Site) FeedURL() string {
	return s.Base + "/feed"
}
