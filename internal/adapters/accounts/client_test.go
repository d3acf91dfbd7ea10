package accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL})
}

func TestLogin_Accepted(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in loginRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if in.Email == "" || in.Password == "" {
			t.Errorf("missing credentials in request: %+v", in)
		}
		_ = json.NewEncoder(w).Encode(loginResponse{Success: true})
	})

	ok, err := c.Login(context.Background(), "alice@facial.sembet.local", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !ok {
		t.Fatalf("expected accepted login")
	}
}

func TestLogin_RejectedIsNotAnError(t *testing.T) {
	t.Parallel()

	for name, h := range map[string]http.HandlerFunc{
		"200 with success=false": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(loginResponse{Success: false, Message: "bad credentials"})
		},
		"401": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		},
		"403": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		},
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, h)
			ok, err := c.Login(context.Background(), "a@b", "pw")
			if err != nil {
				t.Fatalf("rejection must not be an error, got %v", err)
			}
			if ok {
				t.Fatalf("expected rejected login")
			}
		})
	}
}

func TestLogin_ServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Login(context.Background(), "a@b", "pw")
	if err == nil {
		t.Fatalf("expected error on 500")
	}
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable code, got %v", perr.CodeOf(err))
	}
}
