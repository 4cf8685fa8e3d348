package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"codeberg.org/snonux/newscast/internal"
)

// archiveLimits are tried in order; some newsletters return nothing for limit=1
var archiveLimits = []int{1, 5}

// post is the subset of a Substack post document we rely on
type post struct {
	ID           int64  `json:"id"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	CanonicalURL string `json:"canonical_url"`
	BodyHTML     string `json:"body_html"`
}

func (f *Fetcher) apiHeader() http.Header {
	h := http.Header{}
	h.Set("User-Agent", "newscast/"+internal.Version)
	h.Set("Accept", "application/json")
	return h
}

func (f *Fetcher) postURL(p post) string {
	if p.CanonicalURL != "" {
		return p.CanonicalURL
	}
	return f.site.PostURL(p.Slug)
}

// fetchArchive reads the newest post through the public archive API
func (f *Fetcher) fetchArchive(ctx context.Context) (*RawContent, error) {
	header := f.apiHeader()

	var posts []post
	for _, limit := range archiveLimits {
		body, err := get(ctx, f.client, f.site.ArchiveURL(limit), header)
		if err != nil {
			return nil, err
		}
		posts = nil
		if err := json.Unmarshal(body, &posts); err != nil {
			return nil, fmt.Errorf("decode archive: %w", err)
		}
		if len(posts) > 0 {
			break
		}
		f.logger.Debug("archive returned no posts", "limit", limit)
	}
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}

	latest := posts[0]
	if strings.TrimSpace(latest.BodyHTML) == "" {
		if latest.Slug == "" {
			return nil, fmt.Errorf("archive entry %d has neither body nor slug", latest.ID)
		}
		body, err := get(ctx, f.client, f.site.PostAPIURL(latest.Slug), header)
		if err != nil {
			return nil, err
		}
		var full post
		if err := json.Unmarshal(body, &full); err != nil {
			return nil, fmt.Errorf("decode post %s: %w", latest.Slug, err)
		}
		latest.BodyHTML = full.BodyHTML
		if full.CanonicalURL != "" {
			latest.CanonicalURL = full.CanonicalURL
		}
	}

	return &RawContent{Markup: latest.BodyHTML, SourceURL: f.postURL(latest)}, nil
}

// fetchPostsAPI lists posts through the web app's internal API and scrapes
// the newest post page
func (f *Fetcher) fetchPostsAPI(ctx context.Context) (*RawContent, error) {
	header := browserHeader(userAgents[0])
	header.Set("Accept", "application/json")
	header.Set("Referer", f.site.Base+"/")
	if f.config.SessionCookie != "" {
		header.Set("Cookie", "substack.sid="+f.config.SessionCookie)
	}

	body, err := get(ctx, f.client, f.site.PostsAPIURL(1), header)
	if err != nil {
		return nil, err
	}
	var posts []post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}
	if posts[0].Slug == "" {
		return nil, fmt.Errorf("newest post %d has no slug", posts[0].ID)
	}

	postURL := f.site.PostURL(posts[0].Slug)
	header.Set("Accept", "text/html,application/xhtml+xml")
	markup, err := f.fetchPostPage(ctx, postURL, header)
	if err != nil {
		return nil, err
	}
	return &RawContent{Markup: markup, SourceURL: postURL}, nil
}

// fetchPostPage downloads a post page and extracts the article body
func (f *Fetcher) fetchPostPage(ctx context.Context, postURL string, header http.Header) (string, error) {
	page, err := get(ctx, f.client, postURL, header)
	if err != nil {
		return "", err
	}
	return extractArticle(page)
}

// fetchFeed reads the first feed entry and scrapes its page
func (f *Fetcher) fetchFeed(ctx context.Context) (*RawContent, error) {
	return f.fetchFeedOnce(ctx, browserHeader(userAgents[0]))
}

func (f *Fetcher) fetchFeedOnce(ctx context.Context, header http.Header) (*RawContent, error) {
	body, err := get(ctx, f.client, f.site.FeedURL(), header)
	if err != nil {
		return nil, err
	}
	item, err := firstFeedItem(body)
	if err != nil {
		return nil, err
	}
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return nil, errors.New("first feed item has no link")
	}

	markup, err := f.fetchPostPage(ctx, link, header)
	if err != nil {
		return nil, err
	}
	return &RawContent{Markup: markup, SourceURL: link}, nil
}

// fetchFeedWithRetry repeats the feed path with rotating headers and
// random pauses. A 403 or a transport failure moves on to the next
// attempt; any other HTTP error status ends the strategy.
func (f *Fetcher) fetchFeedWithRetry(ctx context.Context) (*RawContent, error) {
	policy := f.config.Retry
	attempts := policy.attempts()

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := sleep(ctx, policy.delay(attempt)); err != nil {
			return nil, err
		}

		content, err := f.fetchFeedOnce(ctx, policy.header(attempt))
		if err == nil {
			return content, nil
		}
		lastErr = err

		code := statusCode(err)
		if code != 0 && code != http.StatusForbidden {
			return nil, fmt.Errorf("attempt %d/%d: %w", attempt+1, attempts, err)
		}
		f.logger.Debug("feed attempt failed", "attempt", attempt+1, "of", attempts, "status", code, "error", err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("gave up after %d attempts: %w", attempts, lastErr)
}

// fetchViaProxies reads the feed through public relays, first success wins
func (f *Fetcher) fetchViaProxies(ctx context.Context) (*RawContent, error) {
	if len(f.config.Proxies) == 0 {
		return nil, errors.New("no proxies configured")
	}

	var errs []error
	for _, p := range f.config.Proxies {
		content, err := f.fetchViaProxy(ctx, p)
		if err == nil {
			return content, nil
		}
		f.logger.Warn("proxy failed", "proxy", p.Name, "kind", p.Kind, "status", statusCode(err), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))

		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errs...)
}

func (f *Fetcher) fetchViaProxy(ctx context.Context, p Proxy) (*RawContent, error) {
	header := browserHeader(userAgents[0])
	body, err := get(ctx, f.client, p.URL(f.site.FeedURL()), header)
	if err != nil {
		return nil, err
	}

	var link, content string
	switch p.Kind {
	case ProxyJSON:
		item, err := decodeJSONFeed(body)
		if err != nil {
			return nil, err
		}
		link, content = item.Link, firstNonEmpty(item.Content, item.Description)
	case ProxyRaw:
		item, err := firstFeedItem(body)
		if err != nil {
			return nil, err
		}
		link, content = item.Link, firstNonEmpty(item.Content, item.Description)
	default:
		return nil, fmt.Errorf("unsupported proxy kind %v", p.Kind)
	}

	link = strings.TrimSpace(link)
	if link == "" {
		return nil, errors.New("proxied feed item has no link")
	}

	switch {
	case strings.TrimSpace(content) == "":
		content, err = f.fetchPostPage(ctx, link, header)
		if err != nil {
			return nil, fmt.Errorf("proxied item has no content and refetch failed: %w", err)
		}
	case p.Kind == ProxyJSON && utf8.RuneCountInString(content) < f.minContentLength():
		f.logger.Info("proxy content looks truncated, refetching post",
			"proxy", p.Name, "chars", utf8.RuneCountInString(content), "threshold", f.minContentLength())
		full, err := f.fetchPostPage(ctx, link, header)
		if err != nil {
			f.logger.Warn("refetch failed, keeping proxy content", "url", link, "error", err)
		} else {
			content = full
		}
	}

	return &RawContent{Markup: content, SourceURL: link}, nil
}

// firstFeedItem parses an RSS or Atom document and returns its first item
func firstFeedItem(body []byte) (*gofeed.Item, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(feed.Items) == 0 || feed.Items[0] == nil {
		return nil, ErrNoPosts
	}
	return feed.Items[0], nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
