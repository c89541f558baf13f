package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// HTMLExtractor collects the visible text of an HTML document
type HTMLExtractor struct{}

// Name identifies the extractor
func (e *HTMLExtractor) Name() string {
	return "html"
}

// Extract parses the file and walks the node tree for visible text
func (e *HTMLExtractor) Extract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	doc, err := html.Parse(strings.NewReader(DecodeText(data)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return visibleText(doc), nil
}

// blockElements end a line of output so header fields like "Date:" stay
// on their own lines for the downstream line-based filters
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "blockquote": true,
}

func visibleText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		// Skip script, style, and other non-visible elements
		if node.Type == html.ElementNode {
			switch node.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if node.Type == html.TextNode {
			text := strings.TrimSpace(node.Data)
			if text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if node.Type == html.ElementNode && blockElements[node.Data] {
			sb.WriteString("\n")
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
