package extract

import (
	"fmt"
	"strings"
)

// Normalize applies the composite-field rules in place:
//
//	class             "Fighter 5" -> "Fighter"
//	level             "Fighter 5" -> "5"
//	subclass          always ""; the export has no line for it
//	passive_abilities "PER:<perception>, INS:<insight>, INV:<investigation>"
func Normalize(rec Record) error {
	class, err := need(rec, "class", "class")
	if err != nil {
		return err
	}
	level, err := need(rec, "level", "level")
	if err != nil {
		return err
	}
	if tokens := strings.Fields(class); len(tokens) > 0 {
		class = tokens[0]
	}
	if tokens := strings.Fields(level); len(tokens) > 0 {
		level = tokens[len(tokens)-1]
	}

	var passives [3]string
	for i, field := range []string{"passive_perception", "passive_insight", "passive_investigation"} {
		if passives[i], err = need(rec, field, "passive_abilities"); err != nil {
			return err
		}
	}

	rec["class"] = Text(class)
	rec["level"] = Text(level)
	rec["subclass"] = Text("")
	rec["passive_abilities"] = Text(fmt.Sprintf("PER:%s, INS:%s, INV:%s", passives[0], passives[1], passives[2]))
	return nil
}

func need(rec Record, field, rule string) (string, error) {
	v, ok := rec.Text(field)
	if !ok {
		return "", &MissingFieldError{Field: field, Rule: rule}
	}
	return v, nil
}
