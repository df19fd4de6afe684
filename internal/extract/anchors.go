package extract

import (
	"strings"

	"github.com/dgallion1/charsheet/internal/document"
)

// Position is a 0-based page and line index.
type Position struct {
	Page int `json:"page"`
	Line int `json:"line"`
}

// Anchors holds the resolved position of every anchor that was found.
// Keys that never occur in the document are absent.
type Anchors map[string]Position

// Locate finds the first line, scanning pages then lines in order, whose
// text contains each key. Matching is case-sensitive substring containment.
func Locate(keys []string, doc *document.Document) Anchors {
	found := make(Anchors, len(keys))
	for _, key := range keys {
		if pos, ok := firstOccurrence(key, doc); ok {
			found[key] = pos
		}
	}
	return found
}

func firstOccurrence(key string, doc *document.Document) (Position, bool) {
	for p, page := range doc.Pages {
		for l, line := range page.Lines {
			if strings.Contains(line, key) {
				return Position{Page: p, Line: l}, true
			}
		}
	}
	return Position{}, false
}

// Lookup returns an anchor's position or a *MissingAnchorError naming the
// field that depended on it.
func (a Anchors) Lookup(key, field string) (Position, error) {
	pos, ok := a[key]
	if !ok {
		return Position{}, &MissingAnchorError{Anchor: key, Field: field}
	}
	return pos, nil
}
