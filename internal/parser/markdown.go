package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/charsheet/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown transcriptions using goldmark. Every
// source line of a block becomes a line; thematic breaks (---) separate pages.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	pages := [][]string{nil}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() == ast.KindThematicBreak {
			pages = append(pages, nil)
			continue
		}
		last := len(pages) - 1
		pages[last] = append(pages[last], blockLines(n, src)...)
	}

	return normalizeLines(document.New(filename, pages...)), nil
}

// blockLines collects the text lines of a block node, descending into
// container blocks such as lists and block quotes.
func blockLines(n ast.Node, src []byte) []string {
	var out []string
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		if n.Kind() == ast.KindParagraph || n.Kind() == ast.KindHeading || n.Kind() == ast.KindTextBlock {
			return splitLines(inlineText(n, src))
		}
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			out = append(out, splitLines(string(seg.Value(src)))...)
		}
		return out
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, blockLines(c, src)...)
	}
	return out
}

// inlineText renders inline children, turning soft and hard breaks into newlines.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		buf.WriteString(inlineText(c, src))
	}
	return buf.String()
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
