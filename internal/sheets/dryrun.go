package sheets

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// DryRunWriter prints the batched payload instead of sending it and keeps
// every payload it was given.
type DryRunWriter struct {
	Out io.Writer

	mu       sync.Mutex
	payloads [][]byte
}

func (d *DryRunWriter) BatchWrite(_ context.Context, target Target, writes []CellWrite) error {
	payload, err := Payload(target, writes)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.payloads = append(d.payloads, payload)
	d.mu.Unlock()

	if d.Out != nil {
		if _, err := fmt.Fprintf(d.Out, "%s\n", payload); err != nil {
			return fmt.Errorf("print payload: %w", err)
		}
	}
	return nil
}

// Payloads returns the payloads written so far, oldest first.
func (d *DryRunWriter) Payloads() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][]byte(nil), d.payloads...)
}
