package fetch

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// bodySelectors locate the article body on a Substack post page, most specific first
var bodySelectors = []string{
	"div.available-content",
	"div.body.markup",
	"article",
	"body",
}

// extractArticle returns the inner HTML of the post body on a post page
func extractArticle(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse post page: %w", err)
	}

	for _, sel := range bodySelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		markup, err := node.Html()
		if err != nil {
			return "", fmt.Errorf("render %s: %w", sel, err)
		}
		if strings.TrimSpace(node.Text()) != "" {
			return strings.TrimSpace(markup), nil
		}
	}
	return "", ErrEmptyContent
}
