// Package sheets maps an extracted record onto spreadsheet cells and
// delivers the result in a single batched write.
package sheets

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/dgallion1/charsheet/internal/extract"
	"github.com/dgallion1/charsheet/internal/layout"
)

// CellWrite sets one cell, addressed in A1 notation, to a value.
type CellWrite struct {
	Cell  string        `json:"cell"`
	Value extract.Value `json:"value"`
}

// Target names the spreadsheet and worksheet a run writes to.
type Target struct {
	Spreadsheet string `json:"spreadsheet"`
	Worksheet   string `json:"worksheet"`
}

// Writer applies every write of a run as one request.
type Writer interface {
	BatchWrite(ctx context.Context, target Target, writes []CellWrite) error
}

// BuildWrites emits one write per mapped field present in the record, in
// cell-map order. Fields missing from the record or without a cell are skipped.
func BuildWrites(rec extract.Record, cells []layout.CellMapping) []CellWrite {
	writes := make([]CellWrite, 0, len(cells))
	for _, c := range cells {
		v, ok := rec[c.Field]
		if !ok {
			continue
		}
		writes = append(writes, CellWrite{Cell: c.Cell, Value: v})
	}
	return writes
}

// Payload is the canonical JSON form of a batched write.
func Payload(target Target, writes []CellWrite) ([]byte, error) {
	if writes == nil {
		writes = []CellWrite{}
	}
	data, err := json.Marshal(struct {
		Target
		Writes []CellWrite `json:"writes"`
	}{target, writes})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return data, nil
}

// Digest computes SHA-256 of a payload and returns it as hex.
func Digest(payload []byte) string {
	h := sha256.Sum256(payload)
	return fmt.Sprintf("%x", h[:])
}

// A1 qualifies a cell with its worksheet, quoting the sheet name.
func A1(worksheet, cell string) string {
	return "'" + escapeSheetName(worksheet) + "'!" + cell
}

func escapeSheetName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == '\'' {
			out = append(out, '\'')
		}
		out = append(out, r)
	}
	return string(out)
}
