package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/dgallion1/charsheet/internal/sheets"
	"github.com/google/uuid"
)

// RunStatus represents the state of a sync run.
type RunStatus string

const (
	StatusParsing    RunStatus = "parsing"
	StatusExtracting RunStatus = "extracting"
	StatusWriting    RunStatus = "writing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// Run tracks one document's trip from decoded text to spreadsheet.
type Run struct {
	mu sync.Mutex

	ID     string
	Source string
	Target sheets.Target

	Status RunStatus
	Phase  string

	Writes        int
	PayloadDigest string
	Err           string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRun starts a run with a fresh ID.
func NewRun(source string, target sheets.Target) *Run {
	now := time.Now()
	return &Run{
		ID:        uuid.NewString(),
		Source:    source,
		Target:    target,
		Status:    StatusParsing,
		Phase:     "parsing",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus updates run status atomically.
func (r *Run) SetStatus(status RunStatus, phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.Phase = phase
	r.UpdatedAt = time.Now()
}

// Fail marks the run failed in the current phase.
func (r *Run) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = StatusFailed
	r.Err = err.Error()
	r.UpdatedAt = time.Now()
}

func (r *Run) setDelivery(writes int, digest string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Writes = writes
	r.PayloadDigest = digest
	r.UpdatedAt = time.Now()
}

// RunSnapshot is a read-only, JSON-safe copy of run state.
type RunSnapshot struct {
	ID            string    `json:"run_id"`
	Source        string    `json:"source"`
	Spreadsheet   string    `json:"spreadsheet"`
	Worksheet     string    `json:"worksheet"`
	Status        RunStatus `json:"status"`
	Phase         string    `json:"phase"`
	Writes        int       `json:"writes"`
	PayloadDigest string    `json:"payload_digest,omitempty"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the run state.
func (r *Run) Snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunSnapshot{
		ID:            r.ID,
		Source:        r.Source,
		Spreadsheet:   r.Target.Spreadsheet,
		Worksheet:     r.Target.Worksheet,
		Status:        r.Status,
		Phase:         r.Phase,
		Writes:        r.Writes,
		PayloadDigest: r.PayloadDigest,
		Error:         r.Err,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// RunStore is a thread-safe in-memory run registry with TTL eviction.
type RunStore struct {
	mu   sync.Mutex
	runs map[string]*Run
	ttl  time.Duration
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		runs: make(map[string]*Run),
		ttl:  ttl,
	}
}

func (s *RunStore) Put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

func (s *RunStore) Get(id string) *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id]
}

// Len returns the number of runs held.
func (s *RunStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}

// Cleanup removes expired runs.
func (s *RunStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, run := range s.runs {
		run.mu.Lock()
		updated := run.UpdatedAt
		run.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.runs, id)
		}
	}
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (s *RunStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup()
			}
		}
	}()
}
