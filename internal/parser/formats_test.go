package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile_Extensions(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"sheet.pdf", false},
		{"SHEET.PDF", false},
		{"sheet.txt", false},
		{"sheet.md", false},
		{"sheet.html", false},
		{"sheet.docx", false},
		{"sheet.csv", true},
		{"sheet", true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			p, err := ForFile(tt.filename, Options{})
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, IsSupportedExtension(tt.filename))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
			assert.True(t, IsSupportedExtension(tt.filename))
		})
	}
}

func TestForFile_PDFOptions(t *testing.T) {
	p, err := ForFile("x.pdf", Options{FallbackPdftotext: true})
	require.NoError(t, err)
	pdf, ok := p.(*PDFParser)
	require.True(t, ok)
	assert.True(t, pdf.FallbackPdftotext)
}

func TestLoad_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\fpage two\n"), 0o644))

	doc, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "line two", doc.Pages[0].Lines[1])
	assert.Equal(t, path, doc.Source)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), Options{})
	assert.Error(t, err)
}

func TestHTMLParser_BlocksAndPages(t *testing.T) {
	input := `<html><head><title>ignored</title></head><body>
<p>ABILITY SAVE DC</p>
<div>Thorin<br>Fighter 5</div>
<hr>
<p>PERSONALITY TRAITS</p>
<script>var x = 1;</script>
</body></html>`
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "sheet.html")
	require.NoError(t, err)

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, []string{"ABILITY SAVE DC", "Thorin", "Fighter 5"}, doc.Pages[0].Lines)
	assert.Equal(t, []string{"PERSONALITY TRAITS"}, doc.Pages[1].Lines)
}

func TestMarkdownParser_LinesAndPages(t *testing.T) {
	input := "ABILITY SAVE DC\nThorin\n\nFighter 5\n\n---\n\nPERSONALITY TRAITS\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "sheet.md")
	require.NoError(t, err)

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, []string{"ABILITY SAVE DC", "Thorin", "Fighter 5"}, doc.Pages[0].Lines)
	assert.Equal(t, []string{"PERSONALITY TRAITS"}, doc.Pages[1].Lines)
}

func TestDOCXParser_ParagraphsAndPageBreaks(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("ABILITY SAVE DC")
	w.AddParagraph().AddText("Thorin")
	w.AddParagraph().AddPageBreaks()
	w.AddParagraph().AddText("PERSONALITY TRAITS")

	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)

	p := &DOCXParser{}
	doc, err := p.Parse(&buf, "sheet.docx")
	require.NoError(t, err)

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, []string{"ABILITY SAVE DC", "Thorin"}, doc.Pages[0].Lines)
	assert.Equal(t, []string{"PERSONALITY TRAITS"}, doc.Pages[1].Lines)
}
