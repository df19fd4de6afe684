// Package pipeline runs a decoded character sheet through extraction and
// delivers the result to the spreadsheet in one batched write.
package pipeline

import (
	"fmt"

	"github.com/dgallion1/charsheet/internal/document"
	"github.com/dgallion1/charsheet/internal/extract"
	"github.com/dgallion1/charsheet/internal/layout"
	"github.com/dgallion1/charsheet/internal/sheets"
)

// Result is everything extracted from one document.
type Result struct {
	Anchors extract.Anchors    `json:"anchors"`
	Record  extract.Record     `json:"record"`
	Writes  []sheets.CellWrite `json:"writes"`
}

// Extract locates anchors once, resolves the direct fields, normalises the
// composite ones, parses both rosters and maps the record onto cells.
// The first failing stage aborts extraction.
func Extract(doc *document.Document, l *layout.Layout) (*Result, error) {
	anchors := extract.Locate(l.AnchorsNeeded(), doc)

	rec, err := extract.ResolveFields(l.Fields, anchors, doc)
	if err != nil {
		return nil, fmt.Errorf("resolve fields: %w", err)
	}
	if err := extract.Normalize(rec); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	lines, err := extract.AbilityLines(l.AbilitySaves, anchors, doc)
	if err != nil {
		return nil, fmt.Errorf("ability saves: %w", err)
	}
	if err := extract.ParseAbilitySaves(lines, rec); err != nil {
		return nil, fmt.Errorf("ability saves: %w", err)
	}

	lines, err = extract.SkillLines(l.Skills, anchors, doc)
	if err != nil {
		return nil, fmt.Errorf("skills: %w", err)
	}
	if err := extract.ParseSkills(lines, rec); err != nil {
		return nil, fmt.Errorf("skills: %w", err)
	}

	return &Result{
		Anchors: anchors,
		Record:  rec,
		Writes:  sheets.BuildWrites(rec, l.Cells),
	}, nil
}
