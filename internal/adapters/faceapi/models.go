package faceapi

// verifyRequest is the wire payload for both live and still verification
type verifyRequest struct {
	Image string `json:"image"`
}

// registerRequest is the wire payload for face enrollment
type registerRequest struct {
	UserID string `json:"user_id"`
	Image  string `json:"image"`
}

// VerifyResult mirrors the verification service response envelope.
// Absent fields decode to zero values, which the classifier treats
// as their falsy meaning.
type VerifyResult struct {
	Success       bool   `json:"success"`
	Authenticated bool   `json:"authenticated"`
	FaceDetected  bool   `json:"face_detected"`
	UserID        string `json:"user_id"`
	Message       string `json:"message"`
}

// registerResult mirrors the enrollment response envelope
type registerResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
