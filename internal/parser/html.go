package parser

import (
	"context"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/qaseg/internal/document"
)

// HTMLParser handles HTML files. Headings and block elements each become one
// line of text; navigation and scripts are skipped.
type HTMLParser struct{}

func (p *HTMLParser) Extract(ctx context.Context, r io.Reader, filename string) (*document.RawDocument, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, extractionError("html", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, extractionError("html", err)
	}

	title := titleFrom(filename)
	if t := findTitle(doc); t != "" {
		title = t
	}

	var text strings.Builder
	emit := func(s string) {
		if s == "" {
			return
		}
		text.WriteString(s)
		text.WriteString("\n")
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "noscript":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6", "p", "li", "td", "th", "blockquote", "dt", "dd", "summary":
				emit(textContent(n))
				return
			case "pre":
				emit(strings.Trim(rawText(n), "\n"))
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return &document.RawDocument{
		Title: title,
		Text:  text.String(),
	}, nil
}

// textContent collapses the text of n onto a single line.
func textContent(n *html.Node) string {
	return strings.Join(strings.Fields(rawText(n)), " ")
}

func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			buf.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
