package faceapi

// Kind partitions a verification round trip into the four states the
// poll loop reacts to
type Kind uint8

const (
	// KindTransportError means the round trip itself failed; the frame was never judged
	KindTransportError Kind = iota

	// KindNoFace means the service saw no face in the frame
	KindNoFace

	// KindFaceUnverified means a face was present but matched no enrolled identity
	KindFaceUnverified

	// KindAuthenticated means the service recognized an enrolled identity
	KindAuthenticated
)

// String returns a short machine tag for logs and status payloads
func (k Kind) String() string {
	switch k {
	case KindAuthenticated:
		return "authenticated"
	case KindFaceUnverified:
		return "face_unverified"
	case KindNoFace:
		return "no_face"
	default:
		return "transport_error"
	}
}

// Outcome is one classified verification round trip.
// Identity is set only for KindAuthenticated. Err is set only for
// KindTransportError.
type Outcome struct {
	Kind     Kind
	Identity string
	Err      error
}

// Classify maps one verification round trip onto an Outcome.
// Precedence: authenticated with a user id wins, then face detection,
// then no face. A round trip error trumps everything because the body
// never arrived or never parsed.
func Classify(res VerifyResult, err error) Outcome {
	if err != nil {
		return Outcome{Kind: KindTransportError, Err: err}
	}
	if res.Authenticated && res.UserID != "" {
		return Outcome{Kind: KindAuthenticated, Identity: res.UserID}
	}
	if res.FaceDetected {
		return Outcome{Kind: KindFaceUnverified}
	}
	return Outcome{Kind: KindNoFace}
}
