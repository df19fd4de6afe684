package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRecord() Record {
	return Record{
		"class":                 Text("Fighter 5"),
		"level":                 Text("Fighter 5"),
		"passive_perception":    Text("14"),
		"passive_insight":       Text("11"),
		"passive_investigation": Text("10"),
	}
}

func TestNormalize_ClassAndLevel(t *testing.T) {
	rec := baseRecord()
	require.NoError(t, Normalize(rec))

	class, _ := rec.Text("class")
	level, _ := rec.Text("level")
	assert.Equal(t, "Fighter", class)
	assert.Equal(t, "5", level)
}

func TestNormalize_MultiWordClass(t *testing.T) {
	rec := baseRecord()
	rec["class"] = Text("Blood Hunter 12")
	rec["level"] = Text("Blood Hunter 12")
	require.NoError(t, Normalize(rec))

	class, _ := rec.Text("class")
	level, _ := rec.Text("level")
	assert.Equal(t, "Blood", class)
	assert.Equal(t, "12", level)
}

func TestNormalize_SubclassAlwaysEmpty(t *testing.T) {
	rec := baseRecord()
	rec["subclass"] = Text("Battle Master")
	require.NoError(t, Normalize(rec))

	sub, ok := rec.Text("subclass")
	require.True(t, ok)
	assert.Equal(t, "", sub)
}

func TestNormalize_PassiveAbilities(t *testing.T) {
	rec := baseRecord()
	require.NoError(t, Normalize(rec))

	got, _ := rec.Text("passive_abilities")
	assert.Equal(t, "PER:14, INS:11, INV:10", got)
}

func TestNormalize_MissingField(t *testing.T) {
	for _, field := range []string{"class", "level", "passive_perception", "passive_insight", "passive_investigation"} {
		t.Run(field, func(t *testing.T) {
			rec := baseRecord()
			delete(rec, field)
			err := Normalize(rec)
			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, field, missing.Field)
		})
	}
}

func TestNormalize_EmptyClassLine(t *testing.T) {
	rec := baseRecord()
	rec["class"] = Text("")
	rec["level"] = Text("")
	require.NoError(t, Normalize(rec))
	class, _ := rec.Text("class")
	assert.Equal(t, "", class)
}
