// Package status tracks the transient save/load message shown to the user.
package status

import (
	"sync"
	"time"

	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
)

// State is the phase of the latest user visible action
type State string

// States
const (
	StateIdle   State = "idle"
	StateSaving State = "saving"
	StateSaved  State = "saved"
	StateError  State = "error"
)

// Severity classifies a status message
type Severity string

// Severities
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultClearDelay is how long a success message stays visible
const DefaultClearDelay = 2 * time.Second

// Status is one snapshot of the reporter
type Status struct {
	State    State
	Severity Severity
	Message  string
	At       time.Time
}

// Reporter holds the current status. Success clears itself after a delay;
// errors stay until the next report.
type Reporter struct {
	mu         sync.Mutex
	clock      clock.Clock
	clearDelay time.Duration
	current    Status
	timer      clock.Timer
	generation uint64
}

// NewReporter creates an idle reporter
func NewReporter(c clock.Clock, clearDelay time.Duration) *Reporter {
	if clearDelay <= 0 {
		clearDelay = DefaultClearDelay
	}
	return &Reporter{
		clock:      c,
		clearDelay: clearDelay,
		current:    Status{State: StateIdle, Severity: SeverityInfo},
	}
}

// Current returns the latest status
func (r *Reporter) Current() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Progress reports an action in flight
func (r *Reporter) Progress(message string) {
	r.set(StateSaving, SeverityInfo, message)
}

// Info reports a soft notice that does not change the save state
func (r *Reporter) Info(message string) {
	r.set(StateIdle, SeverityInfo, message)
}

// Success reports a completed action and schedules the auto clear
func (r *Reporter) Success(message string) {
	gen := r.set(StateSaved, SeveritySuccess, message)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return
	}
	r.timer = r.clock.AfterFunc(r.clearDelay, func() { r.clear(gen) })
}

// Error reports a failure; it persists until the next report
func (r *Reporter) Error(message string) {
	r.set(StateError, SeverityError, message)
}

// Reset returns to idle without a message
func (r *Reporter) Reset() {
	r.set(StateIdle, SeverityInfo, "")
}

func (r *Reporter) set(state State, severity Severity, message string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.generation++
	r.current = Status{State: state, Severity: severity, Message: message, At: r.clock.Now()}
	return r.generation
}

func (r *Reporter) clear(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		return
	}
	r.timer = nil
	r.current = Status{State: StateIdle, Severity: SeverityInfo, At: r.clock.Now()}
}
