package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextParser_PagesAndLines(t *testing.T) {
	input := "ABILITY SAVE DC\nThorin\n\fPERSONALITY TRAITS\nBrave\n"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "sheet.txt")
	require.NoError(t, err)

	assert.Equal(t, "sheet.txt", doc.Source)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, []string{"ABILITY SAVE DC", "Thorin"}, doc.Pages[0].Lines)
	assert.Equal(t, []string{"PERSONALITY TRAITS", "Brave"}, doc.Pages[1].Lines)
	assert.Equal(t, 1, doc.Pages[0].Number)
	assert.Equal(t, 2, doc.Pages[1].Number)
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	require.NoError(t, err)
	assert.Empty(t, doc.Pages)
}

func TestTextParser_KeepsBlankLinesAndIndentation(t *testing.T) {
	// Line positions are significant, so blank lines must survive.
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("a\n\n  b  \n"), "gaps.txt")
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, []string{"a", "", "  b  "}, doc.Pages[0].Lines)
}

func TestTextParser_CRLF(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("one\r\ntwo\r\n"), "dos.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, doc.Pages[0].Lines)
}

func TestTextParser_NormalizesToNFC(t *testing.T) {
	// "e" + combining acute accent composes to a single rune.
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("Cafe\u0301\n"), "nfc.txt")
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", doc.Pages[0].Lines[0])
}

func TestTextParser_EmptyMiddlePage(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("a\f\fb"), "blank.txt")
	require.NoError(t, err)
	require.Len(t, doc.Pages, 3)
	assert.Empty(t, doc.Pages[1].Lines)
	assert.Equal(t, []string{"b"}, doc.Pages[2].Lines)
}
