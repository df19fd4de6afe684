package extract

import (
	"strings"

	"github.com/dgallion1/charsheet/internal/document"
	"github.com/dgallion1/charsheet/internal/layout"
)

// ResolveFields reads every directly-specified field at its anchor-relative
// line. The anchor supplies the line index; the FieldSpec's own page index picks
// the page the line is read from.
func ResolveFields(specs []layout.FieldSpec, anchors Anchors, doc *document.Document) (Record, error) {
	rec := make(Record, len(specs))
	for _, spec := range specs {
		if _, done := rec[spec.Field]; done {
			continue
		}
		pos, err := anchors.Lookup(spec.Anchor, spec.Field)
		if err != nil {
			return nil, err
		}
		line, err := lineAt(doc, spec.Page, pos.Line+spec.Offset, spec.Field)
		if err != nil {
			return nil, err
		}
		rec[spec.Field] = Text(strings.TrimSpace(line))
	}
	return rec, nil
}

func lineAt(doc *document.Document, pageIndex, lineIndex int, field string) (string, error) {
	page, ok := doc.Page(pageIndex)
	if !ok {
		return "", &OutOfBoundsError{Field: field, Page: pageIndex, Line: lineIndex, Count: 0}
	}
	if lineIndex < 0 || lineIndex >= len(page.Lines) {
		return "", &OutOfBoundsError{Field: field, Page: pageIndex, Line: lineIndex, Count: len(page.Lines)}
	}
	return page.Lines[lineIndex], nil
}
