package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/charsheet/internal/document"
	"github.com/dgallion1/charsheet/internal/layout"
	"github.com/dgallion1/charsheet/internal/sheets"
)

// Runner extracts documents and hands each result to a Writer.
type Runner struct {
	layout *layout.Layout
	writer sheets.Writer
	log    *slog.Logger
}

func NewRunner(l *layout.Layout, w sheets.Writer, log *slog.Logger) *Runner {
	return &Runner{layout: l, writer: w, log: log}
}

// Process extracts doc and sends all of its cell writes in a single
// BatchWrite. Nothing is written when extraction fails.
func (r *Runner) Process(ctx context.Context, run *Run, doc *document.Document) (*Result, error) {
	log := r.log.With("run_id", run.ID, "source", run.Source)

	// Phase 1: Extract
	run.SetStatus(StatusExtracting, "extracting")
	res, err := Extract(doc, r.layout)
	if err != nil {
		log.Error("extraction failed", "error", err)
		run.Fail(err)
		return nil, err
	}
	log.Info("extracted record",
		"pages", len(doc.Pages),
		"lines", doc.LineCount(),
		"fields", len(res.Record),
		"writes", len(res.Writes),
	)
	log.Debug("record", "data", res.Record)

	payload, err := sheets.Payload(run.Target, res.Writes)
	if err != nil {
		run.Fail(err)
		return nil, err
	}
	digest := sheets.Digest(payload)
	run.setDelivery(len(res.Writes), digest)

	// Phase 2: Write
	run.SetStatus(StatusWriting, "writing")
	if err := r.writer.BatchWrite(ctx, run.Target, res.Writes); err != nil {
		err = fmt.Errorf("write %q: %w", run.Target.Spreadsheet, err)
		log.Error("batch write failed", "error", err, "payload_digest", digest)
		run.Fail(err)
		return res, err
	}

	run.SetStatus(StatusCompleted, "done")
	log.Info("sync complete",
		"spreadsheet", run.Target.Spreadsheet,
		"worksheet", run.Target.Worksheet,
		"writes", len(res.Writes),
		"payload_digest", digest,
	)
	return res, nil
}
