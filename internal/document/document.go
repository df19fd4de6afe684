package document

import "strings"

// Document is the decoded text layout of a page-rendered file.
// Page order and line order are fixed at load time.
type Document struct {
	Source string // Path or filename the document was decoded from
	Pages  []Page
}

// Page is one rendered page of text lines.
type Page struct {
	Number int      // 1-based page number in the source
	Lines  []string // Lines in reading order, untrimmed
}

// New builds a document from raw page line slices. Used by tests and by
// decoders that already hold per-page lines.
func New(source string, pages ...[]string) *Document {
	doc := &Document{Source: source}
	for i, lines := range pages {
		doc.Pages = append(doc.Pages, Page{Number: i + 1, Lines: lines})
	}
	return doc
}

// FromText splits a text dump into pages on form feeds and into lines on
// newlines. A trailing newline does not produce an empty final line.
func FromText(source, text string) *Document {
	doc := &Document{Source: source}
	for i, raw := range strings.Split(text, "\f") {
		raw = strings.TrimSuffix(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
		var lines []string
		if raw != "" {
			lines = strings.Split(raw, "\n")
		}
		doc.Pages = append(doc.Pages, Page{Number: i + 1, Lines: lines})
	}
	return doc
}

// Page returns the page at a 0-based index.
func (d *Document) Page(index int) (Page, bool) {
	if index < 0 || index >= len(d.Pages) {
		return Page{}, false
	}
	return d.Pages[index], true
}

// LineCount returns the total number of lines across all pages.
func (d *Document) LineCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// Text flattens the document back into its text-dump form.
func (d *Document) Text() string {
	var buf strings.Builder
	for i, p := range d.Pages {
		if i > 0 {
			buf.WriteString("\f")
		}
		buf.WriteString(strings.Join(p.Lines, "\n"))
	}
	return buf.String()
}
