// Package layout describes where character-sheet fields live in the decoded
// text and where they land in the target spreadsheet.
package layout

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var defaultLayout []byte

// FieldSpec locates a field at a fixed line offset from an anchor on a page.
type FieldSpec struct {
	Field  string `yaml:"field" validate:"required"`
	Page   int    `yaml:"page" validate:"gte=0"`
	Anchor string `yaml:"anchor" validate:"required"`
	Offset int    `yaml:"offset"`
}

// RangeSpec bounds a roster's line range. The range starts Offset lines
// after Anchor and, when EndAnchor is set, stops before EndAnchor's line.
type RangeSpec struct {
	Anchor    string `yaml:"anchor" validate:"required"`
	Offset    int    `yaml:"offset"`
	EndAnchor string `yaml:"end_anchor"`
}

// CellMapping sends a record field to a spreadsheet cell in A1 notation.
type CellMapping struct {
	Field string `yaml:"field" validate:"required"`
	Cell  string `yaml:"cell" validate:"required"`
}

// Layout is the complete description of one sheet format.
type Layout struct {
	Anchors      []string      `yaml:"anchors" validate:"required,min=1,dive,required"`
	Fields       []FieldSpec   `yaml:"fields" validate:"dive"`
	AbilitySaves RangeSpec     `yaml:"ability_saves"`
	Skills       RangeSpec     `yaml:"skills"`
	Cells        []CellMapping `yaml:"cells" validate:"dive"`
}

var cellPattern = regexp.MustCompile(`^[A-Z]{1,3}[1-9][0-9]*$`)

// Default returns the built-in layout for D&D Beyond exports.
func Default() (*Layout, error) {
	return Parse(defaultLayout)
}

// Load reads a layout file, or the built-in layout when path is empty.
func Load(path string) (*Layout, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout yaml: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks struct constraints and cross references between sections.
func (l *Layout) Validate() error {
	if err := validator.New().Struct(l); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}

	known := make(map[string]bool, len(l.Anchors))
	for _, a := range l.Anchors {
		known[a] = true
	}
	refs := []string{l.AbilitySaves.Anchor, l.Skills.Anchor}
	if l.AbilitySaves.EndAnchor != "" {
		refs = append(refs, l.AbilitySaves.EndAnchor)
	}
	seen := make(map[string]bool, len(l.Fields))
	for _, f := range l.Fields {
		if seen[f.Field] {
			return fmt.Errorf("invalid layout: field %q specified twice", f.Field)
		}
		seen[f.Field] = true
		refs = append(refs, f.Anchor)
	}
	for _, ref := range refs {
		if !known[ref] {
			return fmt.Errorf("invalid layout: anchor %q is not declared under anchors", ref)
		}
	}

	cells := make(map[string]bool, len(l.Cells))
	for _, c := range l.Cells {
		if !cellPattern.MatchString(c.Cell) {
			return fmt.Errorf("invalid layout: cell %q for field %q is not in A1 notation", c.Cell, c.Field)
		}
		if cells[c.Field] {
			return fmt.Errorf("invalid layout: field %q mapped to more than one cell", c.Field)
		}
		cells[c.Field] = true
	}
	return nil
}

// AnchorsNeeded lists every anchor the layout declares, in declaration order.
func (l *Layout) AnchorsNeeded() []string {
	return append([]string(nil), l.Anchors...)
}
