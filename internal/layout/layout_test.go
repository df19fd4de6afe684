package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"ABILITY SAVE DC", "=== ARMOR ===", "Resistances", "PERSONALITY TRAITS"}, l.Anchors)
	assert.Equal(t, 19, l.AbilitySaves.Offset)
	assert.Equal(t, "Resistances", l.AbilitySaves.EndAnchor)
	assert.Equal(t, "Resistances", l.Skills.Anchor)
	assert.Len(t, l.Cells, 39)
}

func TestDefault_FieldSpecs(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	byField := map[string]FieldSpec{}
	for _, f := range l.Fields {
		byField[f.Field] = f
	}
	assert.Equal(t, FieldSpec{Field: "size", Page: 3, Anchor: "PERSONALITY TRAITS", Offset: 3}, byField["size"])
	assert.Equal(t, FieldSpec{Field: "passive_perception", Page: 0, Anchor: "=== ARMOR ===", Offset: -11}, byField["passive_perception"])
	assert.Equal(t, byField["class"].Offset, byField["level"].Offset)

	// Produced by later stages, never by direct lookup.
	for _, derived := range []string{"subclass", "passive_abilities", "strength_saving_throw", "wisdom_proficiency"} {
		_, ok := byField[derived]
		assert.False(t, ok, "field %s should not have a direct spec", derived)
	}
}

func TestParse_UndeclaredAnchor(t *testing.T) {
	data := []byte(`
anchors: [A]
fields:
  - {field: name, page: 0, anchor: B, offset: 1}
ability_saves: {anchor: A, offset: 1}
skills: {anchor: A}
`)
	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `anchor "B"`)
}

func TestParse_DuplicateField(t *testing.T) {
	data := []byte(`
anchors: [A]
fields:
  - {field: name, page: 0, anchor: A, offset: 1}
  - {field: name, page: 0, anchor: A, offset: 2}
ability_saves: {anchor: A, offset: 1}
skills: {anchor: A}
`)
	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "specified twice")
}

func TestParse_BadCell(t *testing.T) {
	tests := []string{"d3", "3D", "D0", "ABCD1", ""}
	for _, cell := range tests {
		t.Run(cell, func(t *testing.T) {
			l := Layout{
				Anchors:      []string{"A"},
				AbilitySaves: RangeSpec{Anchor: "A"},
				Skills:       RangeSpec{Anchor: "A"},
				Cells:        []CellMapping{{Field: "name", Cell: cell}},
			}
			assert.Error(t, l.Validate())
		})
	}
}

func TestParse_GoodCells(t *testing.T) {
	for _, cell := range []string{"D3", "AO11", "BA127"} {
		l := Layout{
			Anchors:      []string{"A"},
			AbilitySaves: RangeSpec{Anchor: "A"},
			Skills:       RangeSpec{Anchor: "A"},
			Cells:        []CellMapping{{Field: "name", Cell: cell}},
		}
		assert.NoError(t, l.Validate(), cell)
	}
}

func TestParse_MissingAnchors(t *testing.T) {
	_, err := Parse([]byte("fields: []\n"))
	assert.Error(t, err)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("anchors: [unterminated"))
	assert.Error(t, err)
}

func TestLoad_FileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
anchors: [HEADER]
fields:
  - {field: name, page: 0, anchor: HEADER, offset: 1}
ability_saves: {anchor: HEADER, offset: 2, end_anchor: HEADER}
skills: {anchor: HEADER}
cells:
  - {field: name, cell: A1}
`), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"HEADER"}, l.AnchorsNeeded())
	assert.Equal(t, "A1", l.Cells[0].Cell)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	l, err := Load("")
	require.NoError(t, err)
	assert.Len(t, l.Anchors, 4)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
