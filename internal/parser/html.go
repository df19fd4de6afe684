package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/charsheet/internal/document"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML exports. Block-level text becomes a line and
// <hr> or an element with class "page" starts a new page.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	pages := [][]string{nil}
	addLine := func(t string) {
		for _, line := range strings.Split(t, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				last := len(pages) - 1
				pages[last] = append(pages[last], line)
			}
		}
	}
	newPage := func() {
		if len(pages[len(pages)-1]) > 0 {
			pages = append(pages, nil)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "head":
				return
			case "hr":
				newPage()
				return
			case "p", "li", "td", "th", "h1", "h2", "h3", "h4", "h5", "h6", "pre":
				addLine(textContent(n))
				return
			}
			if hasClass(n, "page") {
				newPage()
			}
		}
		if n.Type == html.TextNode {
			addLine(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}
	if n := len(pages); n > 1 && len(pages[n-1]) == 0 {
		pages = pages[:n-1]
	}

	return normalizeLines(document.New(filename, pages...)), nil
}

// textContent keeps <br> as a newline so one block can yield several lines.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			buf.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
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
