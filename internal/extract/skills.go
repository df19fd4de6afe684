package extract

import (
	"strings"

	"github.com/dgallion1/charsheet/internal/document"
	"github.com/dgallion1/charsheet/internal/layout"
)

// SkillProficiencyPrefix starts a line marking the current skill proficient.
const SkillProficiencyPrefix = 'P'

// Skills is the skill roster in sheet order.
var Skills = [18]string{
	"acrobatics", "animal_handling", "arcana", "athletics", "deception", "history",
	"insight", "intimidation", "investigation", "medicine", "nature", "perception",
	"performance", "persuasion", "religion", "sleight_of_hand", "stealth", "survival",
}

// skillState tracks which of a skill's two value lines have been read.
type skillState int

const (
	skillOpen        skillState = iota // only markers so far
	skillHasBonus                      // bonus read, modifier pending
	skillHasModifier                   // modifier read, bonus pending
)

// SkillLines returns the lines of the anchor's page from the anchor line on.
// ParseSkills finds the first skill line inside this range itself.
func SkillLines(spec layout.RangeSpec, anchors Anchors, doc *document.Document) ([]string, error) {
	pos, err := anchors.Lookup(spec.Anchor, "skills")
	if err != nil {
		return nil, err
	}
	page, ok := doc.Page(pos.Page)
	if !ok {
		return nil, &OutOfBoundsError{Field: "skills", Page: pos.Page, Line: pos.Line}
	}
	from := pos.Line + spec.Offset
	if from < 0 || from > len(page.Lines) {
		return nil, &OutOfBoundsError{Field: "skills", Page: pos.Page, Line: from, Count: len(page.Lines)}
	}
	return page.Lines[from:], nil
}

// ParseSkills fills proficiency, bonus and modifier for all eighteen skills.
func ParseSkills(lines []string, rec Record) error {
	return parseSkillRoster(Skills[:], lines, rec)
}

// parseSkillRoster skips header noise up to the first line starting with
// '+', '-' or 'P', then reads one block per roster entry:
//
//	P...    proficiency marker, any number, current skill
//	+N/-N   bonus (full line)
//	other   modifier (trimmed)
//
// A block closes once both its bonus and modifier have been read, in
// either order: a modifier line that follows the bonus still belongs to the
// same skill. After the first skill line every line counts, so a blank line
// is an empty modifier.
func parseSkillRoster(roster []string, lines []string, rec Record) error {
	for _, skill := range roster {
		rec[skill+"_proficiency"] = Flag(false)
	}

	i := skillStart(lines)
	cursor := 0
	state := skillOpen
	for ; i < len(lines) && cursor < len(roster); i++ {
		line := lines[i]
		skill := roster[cursor]

		switch {
		case strings.HasPrefix(line, string(SkillProficiencyPrefix)):
			rec[skill+"_proficiency"] = Flag(true)
			continue
		case strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-"):
			if state == skillHasBonus {
				return &MalformedRosterError{Roster: "skill", Entry: skill, Line: i, Reason: "second bonus line before a modifier"}
			}
			rec[skill+"_bonus"] = Text(line)
			if state == skillOpen {
				state = skillHasBonus
				continue
			}
		default:
			if state == skillHasModifier {
				return &MalformedRosterError{Roster: "skill", Entry: skill, Line: i, Reason: "second modifier line before a bonus"}
			}
			rec[skill+"_mod"] = Text(strings.TrimSpace(line))
			if state == skillOpen {
				state = skillHasModifier
				continue
			}
		}
		cursor++
		state = skillOpen
	}

	if cursor < len(roster) {
		return &MalformedRosterError{Roster: "skill", Entry: roster[cursor], Line: -1, Reason: "lines ended before the roster"}
	}
	return nil
}

func skillStart(lines []string) int {
	for i, line := range lines {
		if line == "" {
			continue
		}
		switch line[0] {
		case '+', '-', SkillProficiencyPrefix:
			return i
		}
	}
	return len(lines)
}
