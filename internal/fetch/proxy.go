package fetch

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// ProxyKind tells how a proxy wraps the feed
type ProxyKind int

const (
	// ProxyJSON proxies convert the feed to rss2json-style JSON
	ProxyJSON ProxyKind = iota
	// ProxyRaw proxies pass the feed XML through unchanged
	ProxyRaw
)

func (k ProxyKind) String() string {
	switch k {
	case ProxyJSON:
		return "json"
	case ProxyRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Proxy is a public RSS relay. Endpoint contains one %s that receives the
// query-escaped feed URL.
type Proxy struct {
	Name     string
	Endpoint string
	Kind     ProxyKind
}

// URL returns the proxy request URL for a feed
func (p Proxy) URL(feedURL string) string {
	return fmt.Sprintf(p.Endpoint, url.QueryEscape(feedURL))
}

// DefaultProxies returns the public relays tried by the last strategy
func DefaultProxies() []Proxy {
	return []Proxy{
		{Name: "rss2json", Endpoint: "https://api.rss2json.com/v1/api.json?rss_url=%s", Kind: ProxyJSON},
		{Name: "allorigins", Endpoint: "https://api.allorigins.win/raw?url=%s", Kind: ProxyRaw},
		{Name: "codetabs", Endpoint: "https://api.codetabs.com/v1/proxy?quest=%s", Kind: ProxyRaw},
	}
}

// jsonFeed is the rss2json response shape
type jsonFeed struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Items   []jsonFeedItem `json:"items"`
}

type jsonFeedItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

func decodeJSONFeed(body []byte) (*jsonFeedItem, error) {
	var feed jsonFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode proxy JSON: %w", err)
	}
	if feed.Status != "" && !strings.EqualFold(feed.Status, "ok") {
		return nil, fmt.Errorf("proxy status %q: %s", feed.Status, feed.Message)
	}
	if len(feed.Items) == 0 {
		return nil, ErrNoPosts
	}
	return &feed.Items[0], nil
}
