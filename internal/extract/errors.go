package extract

import "fmt"

// MissingAnchorError means a configured landmark string never occurs in the document.
type MissingAnchorError struct {
	Anchor string
	Field  string // Field that needed the anchor, if any
}

func (e *MissingAnchorError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("anchor %q not found in document (needed by %s)", e.Anchor, e.Field)
	}
	return fmt.Sprintf("anchor %q not found in document", e.Anchor)
}

// OutOfBoundsError means an anchor-relative offset points outside the target page.
type OutOfBoundsError struct {
	Field string
	Page  int // 0-based page index
	Line  int // Computed absolute line index
	Count int // Lines on the page; 0 when the page does not exist
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: line %d out of range on page %d (%d lines)", e.Field, e.Line, e.Page, e.Count)
}

// MalformedRosterError means a roster state machine and its line range disagree:
// the lines ran out before the roster did, or the layout broke the expected pattern.
type MalformedRosterError struct {
	Roster string // "ability" or "skill"
	Entry  string // Roster entry being parsed when the problem surfaced
	Line   int    // Offset into the parsed range, -1 when the range was exhausted
	Reason string
}

func (e *MalformedRosterError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("malformed %s roster at %s: %s", e.Roster, e.Entry, e.Reason)
	}
	return fmt.Sprintf("malformed %s roster at %s (line %d): %s", e.Roster, e.Entry, e.Line, e.Reason)
}

// MissingFieldError means normalization referenced a field no earlier stage populated.
type MissingFieldError struct {
	Field string
	Rule  string // Normalization rule that needed it
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: field %q was never populated", e.Rule, e.Field)
}
