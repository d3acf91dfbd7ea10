package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/faceapi"
	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
)

type stubVerifier struct {
	res faceapi.VerifyResult
	err error
}

func (v stubVerifier) VerifyStill(context.Context, string) (faceapi.VerifyResult, error) {
	return v.res, v.err
}

type stubProvider struct {
	ok    bool
	err   error
	calls int
	email string
}

func (p *stubProvider) Login(_ context.Context, email, _ string) (bool, error) {
	p.calls++
	p.email = email
	return p.ok, p.err
}

var testSecret = []byte("still-test-secret-0123456789abcd")

func TestAuthenticate_EmptyImage(t *testing.T) {
	s := New(stubVerifier{}, &stubProvider{}, testSecret)
	_, err := s.Authenticate(context.Background(), "")
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid arg, got %v", err)
	}
}

func TestAuthenticate_RecognizedAndLoggedIn(t *testing.T) {
	p := &stubProvider{ok: true}
	s := New(stubVerifier{res: faceapi.VerifyResult{
		Success:       true,
		Authenticated: true,
		FaceDetected:  true,
		UserID:        "Debora Amaral",
	}}, p, testSecret)

	res, err := s.Authenticate(context.Background(), "data:image/jpeg;base64,xxxx")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if res.Identity != "debora.amaral" {
		t.Fatalf("unexpected identity %q", res.Identity)
	}
	if res.Email != p.email {
		t.Fatalf("result email %q does not match login email %q", res.Email, p.email)
	}
	if res.Outcome != "authenticated" {
		t.Fatalf("unexpected outcome %q", res.Outcome)
	}
}

func TestAuthenticate_NeverProvisions(t *testing.T) {
	p := &stubProvider{ok: false}
	s := New(stubVerifier{res: faceapi.VerifyResult{
		Authenticated: true,
		FaceDetected:  true,
		UserID:        "Newcomer",
	}}, p, testSecret)

	_, err := s.Authenticate(context.Background(), "data:image/jpeg;base64,xxxx")
	if !perr.IsCode(err, perr.ErrorCodeNoMatch) {
		t.Fatalf("expected no match, got %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("expected a single login attempt, got %d", p.calls)
	}
}

func TestAuthenticate_OutcomesWithoutIdentity(t *testing.T) {
	cases := []struct {
		name string
		res  faceapi.VerifyResult
		want string
	}{
		{"no face", faceapi.VerifyResult{Success: true}, "no_face"},
		{"face unverified", faceapi.VerifyResult{Success: true, FaceDetected: true}, "face_unverified"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &stubProvider{}
			s := New(stubVerifier{res: tc.res}, p, testSecret)

			res, err := s.Authenticate(context.Background(), "data:image/jpeg;base64,xxxx")
			if !perr.IsCode(err, perr.ErrorCodeNoMatch) {
				t.Fatalf("expected no match, got %v", err)
			}
			if res.Outcome != tc.want {
				t.Fatalf("outcome = %q, want %q", res.Outcome, tc.want)
			}
			if p.calls != 0 {
				t.Fatal("login must not be attempted without a recognized identity")
			}
		})
	}
}

func TestAuthenticate_BackendUnreachable(t *testing.T) {
	s := New(stubVerifier{err: errors.New("dial tcp: refused")}, &stubProvider{}, testSecret)

	_, err := s.Authenticate(context.Background(), "data:image/jpeg;base64,xxxx")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestAuthenticate_LoginTransportError(t *testing.T) {
	s := New(stubVerifier{res: faceapi.VerifyResult{
		Authenticated: true,
		FaceDetected:  true,
		UserID:        "Debora",
	}}, &stubProvider{err: errors.New("refused")}, testSecret)

	_, err := s.Authenticate(context.Background(), "data:image/jpeg;base64,xxxx")
	if !perr.IsCode(err, perr.ErrorCodeResolutionFailed) {
		t.Fatalf("expected resolution failed, got %v", err)
	}
}
