package health

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/kjstillabower/weather-widget/internal/client"
)

// Status is the service state reported by /health.
type Status string

const (
	StatusHealthy      Status = "healthy"
	StatusIdle         Status = "idle"
	StatusDegraded     Status = "degraded"
	StatusOverloaded   Status = "overloaded"
	StatusShuttingDown Status = "shutting-down"
)

// Serving reports whether a load balancer should keep routing traffic here.
func (s Status) Serving() bool {
	return s == StatusHealthy || s == StatusIdle
}

// Config holds the thresholds used to evaluate health. Zero windows disable their check.
type Config struct {
	// Overload: requests in OverloadWindow above OverloadThresholdPct of RateLimitRPS*window.
	OverloadWindow       time.Duration
	OverloadThresholdPct int
	RateLimitRPS         int

	// Idle: fewer than IdleThresholdReqPerMin widget lookups per minute once MinimumLifespan has passed.
	IdleWindow             time.Duration
	IdleThresholdReqPerMin int
	MinimumLifespan        time.Duration

	// Degraded: upstream failure share in DegradedWindow at or above DegradedErrorPct.
	DegradedWindow   time.Duration
	DegradedErrorPct int
}

// KeyChecker verifies the upstream API key. Only errors wrapping client.ErrInvalidAPIKey
// mark the key invalid; other key check failures leave the evaluation to the traffic window.
type KeyChecker func(ctx context.Context) error

// Report is one health evaluation.
type Report struct {
	Status Status
	Reason string
	// KeyValid is false when the upstream rejected the API key.
	KeyValid bool
}

// Monitor tracks widget lookup outcomes and the shutdown flag and turns them into a Status.
type Monitor struct {
	cfg          Config
	window       *Window
	checkKey     KeyChecker
	started      time.Time
	now          func() time.Time
	shuttingDown atomic.Bool
}

// NewMonitor creates a Monitor. checkKey may be nil to skip the key check.
func NewMonitor(cfg Config, checkKey KeyChecker, now func() time.Time) *Monitor {
	if now == nil {
		now = time.Now
	}
	retention := cfg.OverloadWindow
	for _, d := range []time.Duration{cfg.IdleWindow, cfg.DegradedWindow} {
		if d > retention {
			retention = d
		}
	}
	return &Monitor{
		cfg:      cfg,
		window:   NewWindow(retention, now),
		checkKey: checkKey,
		started:  now(),
		now:      now,
	}
}

// RecordSuccess records a lookup that produced a widget view.
func (m *Monitor) RecordSuccess() { m.window.record(outcomeSuccess) }

// RecordFailure records a lookup that failed upstream.
func (m *Monitor) RecordFailure() { m.window.record(outcomeFailure) }

// RecordDenied records a request rejected by the inbound rate limiter.
func (m *Monitor) RecordDenied() { m.window.record(outcomeDenied) }

// SetShuttingDown flips the drain flag. Set on SIGTERM/SIGINT.
func (m *Monitor) SetShuttingDown(v bool) { m.shuttingDown.Store(v) }

// IsShuttingDown reports whether the process is draining.
func (m *Monitor) IsShuttingDown() bool { return m.shuttingDown.Load() }

// RequestsInWindow returns all outcomes (including denials) in the overload window.
func (m *Monitor) RequestsInWindow() int {
	s, f, d := m.window.Counts(m.cfg.OverloadWindow)
	return s + f + d
}

// DenialsInWindow returns rate-limit denials in the overload window.
func (m *Monitor) DenialsInWindow() int {
	_, _, d := m.window.Counts(m.cfg.OverloadWindow)
	return d
}

// Reset clears recorded outcomes and the drain flag.
func (m *Monitor) Reset() {
	m.window.Reset()
	m.shuttingDown.Store(false)
}

// Evaluate computes the current status.
// Order: shutting-down > api key invalid > overloaded > idle > degraded > healthy.
func (m *Monitor) Evaluate(ctx context.Context) Report {
	if m.IsShuttingDown() {
		return Report{Status: StatusShuttingDown, Reason: "signal", KeyValid: true}
	}
	if m.checkKey != nil {
		if err := m.checkKey(ctx); errors.Is(err, client.ErrInvalidAPIKey) {
			return Report{Status: StatusDegraded, Reason: "api_key_invalid"}
		}
	}

	if m.cfg.OverloadWindow > 0 && m.cfg.RateLimitRPS > 0 {
		threshold := float64(m.cfg.RateLimitRPS) * m.cfg.OverloadWindow.Seconds() * float64(m.cfg.OverloadThresholdPct) / 100
		if float64(m.RequestsInWindow()) > threshold {
			return Report{Status: StatusOverloaded, Reason: "overload_threshold", KeyValid: true}
		}
	}

	if m.cfg.IdleWindow > 0 && m.cfg.MinimumLifespan > 0 && m.now().Sub(m.started) >= m.cfg.MinimumLifespan {
		s, f, _ := m.window.Counts(m.cfg.IdleWindow)
		perMin := float64(s+f) / m.cfg.IdleWindow.Minutes()
		if perMin < float64(m.cfg.IdleThresholdReqPerMin) {
			return Report{Status: StatusIdle, Reason: "low_traffic", KeyValid: true}
		}
	}

	if m.cfg.DegradedWindow > 0 && m.cfg.DegradedErrorPct > 0 {
		s, f, _ := m.window.Counts(m.cfg.DegradedWindow)
		if total := s + f; total > 0 {
			pct := float64(f) * 100 / float64(total)
			if pct >= float64(m.cfg.DegradedErrorPct) {
				return Report{Status: StatusDegraded, Reason: "error_rate_breach", KeyValid: true}
			}
		}
	}
	return Report{Status: StatusHealthy, KeyValid: true}
}
