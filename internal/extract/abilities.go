package extract

import (
	"strconv"
	"strings"

	"github.com/dgallion1/charsheet/internal/document"
	"github.com/dgallion1/charsheet/internal/layout"
)

// AbilityProficiencyMarker is the glyph printed on its own line before a
// proficient saving throw.
const AbilityProficiencyMarker = "•"

// Abilities is the ability roster in sheet order.
var Abilities = [6]string{"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma"}

type abilityState int

const (
	awaitingAbility abilityState = iota // no ability claimed
	awaitingValue                       // ability claimed by a marker, value not yet read
)

// AbilityLines returns the saving-throw line range: from Offset lines after
// the start anchor up to, not including, the end anchor's line. When the end
// anchor sits on a later page the range runs to the end of the start page.
func AbilityLines(spec layout.RangeSpec, anchors Anchors, doc *document.Document) ([]string, error) {
	start, err := anchors.Lookup(spec.Anchor, "ability_saves")
	if err != nil {
		return nil, err
	}
	page, ok := doc.Page(start.Page)
	if !ok {
		return nil, &OutOfBoundsError{Field: "ability_saves", Page: start.Page, Line: start.Line}
	}
	from := start.Line + spec.Offset
	to := len(page.Lines)
	if spec.EndAnchor != "" {
		end, err := anchors.Lookup(spec.EndAnchor, "ability_saves")
		if err != nil {
			return nil, err
		}
		if end.Page == start.Page {
			to = end.Line
		}
	}
	if from < 0 || from > len(page.Lines) {
		return nil, &OutOfBoundsError{Field: "ability_saves", Page: start.Page, Line: from, Count: len(page.Lines)}
	}
	if to < from {
		to = from
	}
	return page.Lines[from:to], nil
}

// ParseAbilitySaves walks the saving-throw lines against the ability roster.
// An ability with a proficiency marker takes two lines (marker, value); one
// without takes a single value line. Every line is a roster step, so a
// blank line is an empty value.
func ParseAbilitySaves(lines []string, rec Record) error {
	for _, ability := range Abilities {
		rec[ability+"_proficiency"] = Flag(false)
	}

	cursor := 0
	state := awaitingAbility
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if cursor == len(Abilities) {
			return &MalformedRosterError{Roster: "ability", Entry: "end of roster", Line: i, Reason: "unexpected line " + quote(line)}
		}
		ability := Abilities[cursor]
		marker := line == AbilityProficiencyMarker

		switch state {
		case awaitingAbility:
			if marker {
				rec[ability+"_proficiency"] = Flag(true)
				state = awaitingValue
				continue
			}
		case awaitingValue:
			if marker {
				return &MalformedRosterError{Roster: "ability", Entry: ability, Line: i, Reason: "second proficiency marker before a value"}
			}
		}
		rec[ability+"_saving_throw"] = Text(line)
		cursor++
		state = awaitingAbility
	}

	if cursor < len(Abilities) {
		return &MalformedRosterError{Roster: "ability", Entry: Abilities[cursor], Line: -1, Reason: "line range ended before the roster"}
	}
	return nil
}

func quote(s string) string {
	const limit = 40
	if r := []rune(s); len(r) > limit {
		s = string(r[:limit]) + "..."
	}
	return strconv.Quote(s)
}
