// Package domain defines the identity resolution ports and types
package domain

import (
	"context"
	"time"
)

// State is the per-recognition resolution state machine
type State string

const (
	// StateIdle means no resolution has run yet
	StateIdle State = "idle"

	// StateAuthenticating means derived credentials are being tried
	StateAuthenticating State = "authenticating"

	// StateProvisioning means the first login was rejected and a
	// facial credential is being provisioned
	StateProvisioning State = "provisioning_new_account"

	// StateSucceeded means a local session was committed
	StateSucceeded State = "succeeded"

	// StateFailed means the retry also failed; terminal for this
	// recognition event
	StateFailed State = "failed"
)

// Session is the committed local login session
type Session struct {
	Token    string    `json:"token"`
	Identity string    `json:"identity"`
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

// Credential is a provisioned facial credential row
type Credential struct {
	Identity  string
	Email     string
	Password  string
	CreatedAt time.Time
}

// ResolvePort resolves a recognized identity into a session
type ResolvePort interface {
	// Resolve runs the flow for one recognized identity. It refuses
	// to start while the poller gate is open, and ignores further
	// identities once a session is committed.
	Resolve(ctx context.Context, rawIdentity string) error

	// State returns the current resolution state
	State() State

	// Session returns the committed session, if any
	Session() (Session, bool)

	// Close cancels the pending redirect timer; part of teardown
	Close()
}

// Navigator is the screen router port; resolution schedules the home
// redirect through it after the configured delay
type Navigator interface {
	NavigateHome()
}
