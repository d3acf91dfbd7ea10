// Package domain holds the facial API transport DTOs
package domain

// StillInput is the upload verification payload
type StillInput struct {
	Image string `json:"image" validate:"required,datauri"`
}

// EnrollInput is the face registration payload
type EnrollInput struct {
	UserID string `json:"user_id" validate:"required,min=1,max=128"`
	Image  string `json:"image"   validate:"required,datauri"`
}
