// Package domain defines the capture session ports and status types
package domain

import (
	"context"
	"time"
)

// State is the lifecycle of the camera session
type State string

const (
	// StateIdle means no device is held and no loop is running
	StateIdle State = "idle"

	// StatePolling means the loop is submitting frames on its interval
	StatePolling State = "polling"

	// StateResolving means a positive match stopped the loop and
	// identity resolution is in flight
	StateResolving State = "resolving"

	// StateResolved means resolution committed a session
	StateResolved State = "resolved"

	// StateFailed means resolution failed terminally; the loop does
	// not restart on its own
	StateFailed State = "failed"
)

// Status is the read surface the UI polls. Message is the short
// user-facing line; Outcome is the machine tag of the last tick.
type Status struct {
	State     State     `json:"state"`
	Message   string    `json:"message"`
	Outcome   string    `json:"outcome,omitempty"`
	Identity  string    `json:"identity,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CapturePort drives the camera session
type CapturePort interface {
	// Start acquires the device and begins polling. Starting over a
	// live session releases the old device first. Device acquisition
	// failure leaves the session idle.
	Start(ctx context.Context) error

	// Stop tears the session down. Idempotent; late poll results are
	// discarded without touching state.
	Stop()

	// Status returns the current session status snapshot
	Status() Status
}

// Gate reports whether the poll loop has stopped submitting.
// Resolution refuses to run while the gate is open.
type Gate interface {
	PollerStopped() bool
}

// Resolver is the handoff target for the first positive match
type Resolver interface {
	Resolve(ctx context.Context, identity string) error
}
