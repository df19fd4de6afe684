package parser

import (
	"bufio"
	"io"

	"github.com/dgallion1/charsheet/internal/document"
)

// TextParser handles pre-extracted text dumps. Form feeds separate pages,
// newlines separate lines.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(splitPages)

	doc := &document.Document{Source: filename}
	for scanner.Scan() {
		page := document.FromText(filename, scanner.Text()).Pages[0]
		page.Number = len(doc.Pages) + 1
		doc.Pages = append(doc.Pages, page)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return normalizeLines(doc), nil
}

// splitPages is a bufio.SplitFunc yielding the text between form feeds.
func splitPages(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i, b := range data {
		if b == '\f' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		if len(data) == 0 {
			return 0, nil, nil
		}
		return len(data), data, nil
	}
	return 0, nil, nil
}
