// Package domain declares the face enrollment contracts
package domain

import "context"

// Receipt is the backend's answer to a successful enrollment
type Receipt struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// EnrollPort registers a face with the verification backend
type EnrollPort interface {
	Register(ctx context.Context, userID, imageDataURL string) (Receipt, error)
}
