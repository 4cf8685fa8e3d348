package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	removedElements = "script, style, img, figure, span"
	blockElements   = "p, h1, h2, h3, h4, h5, h6, div, blockquote, hr"

	// minLineLength drops leftovers such as bullets and stray punctuation
	minLineLength = 3
)

var (
	manyNewlines   = regexp.MustCompile(`\n{3,}`)
	horizontalRuns = regexp.MustCompile(`[ \t\x{00a0}]+`)
	paddedNewlines = regexp.MustCompile(` *\n *`)
	moreInfo       = regexp.MustCompile(`more info.*`)
	typeYourEmail  = regexp.MustCompile(`Type your email.*`)
)

// Clean converts markup into plain text with one blank line between
// paragraphs. Subscribe prompts, email capture boxes and fragments shorter
// than three characters are removed. Clean never fails; unparseable input
// yields whatever text could be recovered.
func Clean(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return finish(markup)
	}

	doc.Find(removedElements).Remove()

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithNodes(textNode(s.Text()))
	})

	for _, root := range doc.Nodes {
		flattenNewlines(root)
	}

	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AfterNodes(textNode("\n\n"))
	})

	return finish(doc.Text())
}

func textNode(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// flattenNewlines turns line breaks inside text nodes into spaces so that
// only block structure produces paragraph breaks
func flattenNewlines(n *html.Node) {
	if n.Type == html.TextNode {
		n.Data = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flattenNewlines(c)
	}
}

func finish(text string) string {
	text = manyNewlines.ReplaceAllString(text, "\n\n")
	text = horizontalRuns.ReplaceAllString(text, " ")
	text = paddedNewlines.ReplaceAllString(text, "\n")
	text = strings.TrimSpace(text)

	text = moreInfo.ReplaceAllString(text, "")
	for strings.Contains(text, "Subscribe") {
		text = strings.ReplaceAll(text, "Subscribe", "")
	}
	text = typeYourEmail.ReplaceAllString(text, "")

	var paragraphs []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < minLineLength {
			continue
		}
		paragraphs = append(paragraphs, line)
	}
	return strings.Join(paragraphs, "\n\n")
}
