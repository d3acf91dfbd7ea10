package net_test

import (
	"context"
	"testing"

	pnet "github.com/DeboraAmaral/sprint04-iot/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets both ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123", "cap-abc")

		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.CaptureID(ctx); got != "cap-abc" {
			t.Fatalf("CaptureID got %q want %q", got, "cap-abc")
		}
	})

	t.Run("sets only request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "r-only", "")

		if got := pnet.RequestID(ctx); got != "r-only" {
			t.Fatalf("RequestID got %q want %q", got, "r-only")
		}
		if got := pnet.CaptureID(ctx); got != "" {
			t.Fatalf("CaptureID got %q want empty", got)
		}
	})

	t.Run("sets only capture id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "c-only")

		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.CaptureID(ctx); got != "c-only" {
			t.Fatalf("CaptureID got %q want %q", got, "c-only")
		}
	})

	t.Run("no ids returns same ctx and empty getters", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "")

		// should be the same reference since nothing was set
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when both ids empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.CaptureID(ctx); got != "" {
			t.Fatalf("CaptureID got %q want empty", got)
		}
	})

	t.Run("user id round trip", func(t *testing.T) {
		ctx := pnet.WithUser(base, "user-7")

		if got := pnet.UserID(ctx); got != "user-7" {
			t.Fatalf("UserID got %q want %q", got, "user-7")
		}
		if got := pnet.UserID(base); got != "" {
			t.Fatalf("UserID on base got %q want empty", got)
		}
	})
}
