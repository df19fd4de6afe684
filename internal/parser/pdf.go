package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/dgallion1/charsheet/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if available.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "charsheet-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, err := extractPDFLines(tmpPath)
	if (err != nil || countLines(pages) == 0) && p.FallbackPdftotext {
		var text string
		text, err = extractPdftotext(tmpPath)
		if err == nil {
			return normalizeLines(document.FromText(filename, text)), nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return normalizeLines(document.New(filename, pages...)), nil
}

func extractPDFLines(path string) ([][]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([][]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			// Keep page indices aligned with the source.
			pages = append(pages, nil)
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, rowsToLines(rows))
	}
	return pages, nil
}

// rowsToLines turns positioned text runs into lines, top of page first.
// Runs on the same baseline separated by a wide gap belong to different
// layout boxes and become separate lines.
func rowsToLines(rows pdflib.Rows) []string {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position > rows[j].Position })

	var lines []string
	for _, row := range rows {
		runs := append(pdflib.TextHorizontal(nil), row.Content...)
		sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

		var cur strings.Builder
		var prevEnd float64
		for k, run := range runs {
			if k > 0 {
				gap := run.X - prevEnd
				size := run.FontSize
				if size <= 0 {
					size = 1
				}
				switch {
				case gap > 2*size:
					if s := strings.TrimSpace(cur.String()); s != "" {
						lines = append(lines, s)
					}
					cur.Reset()
				case gap > size/4 && !strings.HasSuffix(cur.String(), " "):
					cur.WriteString(" ")
				}
			}
			cur.WriteString(run.S)
			prevEnd = run.X + run.W
		}
		if s := strings.TrimSpace(cur.String()); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-raw", "-enc", "UTF-8", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

func countLines(pages [][]string) int {
	n := 0
	for _, p := range pages {
		n += len(p)
	}
	return n
}
