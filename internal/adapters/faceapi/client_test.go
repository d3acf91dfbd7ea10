package faceapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(Options{BaseURL: srv.URL, Timeout: 2 * time.Second, MaxRetries: 2, RetryBase: time.Millisecond})
	c.sleep = func(time.Duration) {} // no real waits in tests
	return c, srv
}

func TestVerifyLive_DecodesBody(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathVerifyLive {
			t.Errorf("path = %q want %q", r.URL.Path, pathVerifyLive)
		}
		var in verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if in.Image != "data:image/jpeg;base64,abcd" {
			t.Errorf("image payload = %q", in.Image)
		}
		_ = json.NewEncoder(w).Encode(VerifyResult{Success: true, Authenticated: true, FaceDetected: true, UserID: "alice"})
	})

	res, err := c.VerifyLive(context.Background(), "data:image/jpeg;base64,abcd")
	if err != nil {
		t.Fatalf("VerifyLive: %v", err)
	}
	if !res.Authenticated || res.UserID != "alice" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestVerifyStill_Non200_IsUnavailable(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.VerifyStill(context.Background(), "data:image/jpeg;base64,abcd")
	if err == nil {
		t.Fatalf("expected error on 500")
	}
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable code, got %v", perr.CodeOf(err))
	}
}

func TestVerify_GarbageBody_IsUnavailable(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.VerifyLive(context.Background(), "data:image/jpeg;base64,abcd")
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable code, got %v", perr.CodeOf(err))
	}
}

func TestRegister_SuccessAndRejection(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in registerRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.UserID == "alice" {
			_ = json.NewEncoder(w).Encode(registerResult{Success: true, Message: "face registered"})
			return
		}
		_ = json.NewEncoder(w).Encode(registerResult{Success: false, Error: "no face in image"})
	})

	msg, err := c.Register(context.Background(), "alice", "data:image/jpeg;base64,abcd")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if msg != "face registered" {
		t.Fatalf("message = %q", msg)
	}

	_, err = c.Register(context.Background(), "bob", "data:image/jpeg;base64,abcd")
	if err == nil {
		t.Fatalf("expected rejection error")
	}
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument code, got %v", perr.CodeOf(err))
	}
}

func TestHealth_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 probe calls, got %d", got)
	}
}

func TestHealth_ExhaustsRetries(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	err := c.Health(context.Background())
	if err == nil {
		t.Fatalf("expected error after retries exhausted")
	}
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable code, got %v", perr.CodeOf(err))
	}
}

func TestHealth_ContextCancelStopsRetrying(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cancel() // cancel while the probe is failing
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	err := c.Health(ctx)
	if err == nil {
		t.Fatalf("expected context error")
	}
}
