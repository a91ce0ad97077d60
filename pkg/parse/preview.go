package parse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractTextPreview strips non-content markup from an HTML body and returns
// a plain-text excerpt of at most limit characters. Script, style and
// noscript subtrees are removed before any text is collected, remaining text
// nodes are trimmed and whitespace-collapsed in document order, and the final
// string is hard-truncated (no ellipsis, may split a word). Empty input
// yields an empty string; the function never fails.
func ExtractTextPreview(htmlBody string, limit int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	var segments []string
	for _, root := range doc.Selection.Nodes {
		collectText(root, &segments)
	}

	text := strings.Join(segments, " ")
	runes := []rune(text)
	if limit >= 0 && len(runes) > limit {
		return string(runes[:limit])
	}
	return text
}

// collectText appends the whitespace-normalized content of every text node
// under n, in document order.
func collectText(n *html.Node, segments *[]string) {
	if n.Type == html.TextNode {
		if fields := strings.Fields(n.Data); len(fields) > 0 {
			*segments = append(*segments, strings.Join(fields, " "))
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, segments)
	}
}
