package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/charsheet/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Each paragraph becomes a line and
// explicit page breaks start a new page.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "charsheet-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	pages := [][]string{nil}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text, breakAfter := docxParagraphText(para)
		if text != "" {
			last := len(pages) - 1
			pages[last] = append(pages[last], text)
		}
		if breakAfter {
			pages = append(pages, nil)
		}
	}

	return normalizeLines(document.New(filename, pages...)), nil
}

// docxParagraphText returns the paragraph's text and whether it carries a
// page break.
func docxParagraphText(para *docx.Paragraph) (string, bool) {
	var buf strings.Builder
	pageBreak := false
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			switch v := rc.(type) {
			case *docx.Text:
				buf.WriteString(v.Text)
			case *docx.BarterRabbet:
				if v.Type == "page" {
					pageBreak = true
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), pageBreak
}
