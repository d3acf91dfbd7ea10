// Package domain declares the upload verification contracts
package domain

import "context"

// Result is the outcome of a one-shot upload verification
type Result struct {
	// Outcome is the classified verification outcome
	Outcome string `json:"outcome"`

	// Identity is the recognized identity slug, empty unless authenticated
	Identity string `json:"identity,omitempty"`

	// Email is the derived account email, empty unless authenticated
	Email string `json:"email,omitempty"`
}

// StillPort verifies a single uploaded frame against the backend
type StillPort interface {
	// Authenticate verifies the data-URL still and, when a known face
	// is recognized, logs the derived account in. There is no
	// provisioning fallback on this path.
	Authenticate(ctx context.Context, imageDataURL string) (Result, error)
}
