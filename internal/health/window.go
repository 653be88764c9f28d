package health

import (
	"sync"
	"time"
)

type outcome uint8

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeDenied
)

type event struct {
	at   time.Time
	kind outcome
}

// Window keeps timestamped request outcomes for sliding-window queries.
// Events older than the retention period are pruned on write.
type Window struct {
	mu        sync.Mutex
	events    []event
	retention time.Duration
	now       func() time.Time
}

// NewWindow returns a Window retaining events for the given period.
func NewWindow(retention time.Duration, now func() time.Time) *Window {
	if now == nil {
		now = time.Now
	}
	return &Window{retention: retention, now: now}
}

func (w *Window) record(kind outcome) {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()
	w.events = append(w.events, event{at: now, kind: kind})
	w.pruneLocked(now)
}

// Counts returns successes, failures and denials in the period ending now.
func (w *Window) Counts(period time.Duration) (success, failure, denied int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cutoff := w.now().Add(-period)
	for _, e := range w.events {
		if e.at.Before(cutoff) {
			continue
		}
		switch e.kind {
		case outcomeSuccess:
			success++
		case outcomeFailure:
			failure++
		case outcomeDenied:
			denied++
		}
	}
	return success, failure, denied
}

// Reset drops all recorded events.
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = nil
}

// pruneLocked must be called with mu held. Events are appended in time order.
func (w *Window) pruneLocked(now time.Time) {
	if w.retention <= 0 {
		return
	}
	cutoff := now.Add(-w.retention)
	i := 0
	for ; i < len(w.events) && w.events[i].at.Before(cutoff); i++ {
	}
	if i > 0 {
		w.events = append(w.events[:0], w.events[i:]...)
	}
}
