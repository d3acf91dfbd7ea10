// Package faceapi provides the HTTP client for the remote face verification service
package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/logger"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUA        = "sembet-agent"
	defaultMaxRetry  = 5
	defaultRetryBase = 500 * time.Millisecond

	pathVerifyLive = "/verify-live-face"
	pathVerify     = "/verify-face"
	pathRegister   = "/register-face"
	pathHealth     = "/health"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for the health probe only. Verify calls are
	// single-shot: the poll loop is the retry mechanism.
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal verification service client
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("faceapi"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// VerifyLive submits a camera frame for liveness verification
func (c *Client) VerifyLive(ctx context.Context, imageDataURL string) (VerifyResult, error) {
	return c.verify(ctx, pathVerifyLive, imageDataURL)
}

// VerifyStill submits an uploaded still for one shot verification
func (c *Client) VerifyStill(ctx context.Context, imageDataURL string) (VerifyResult, error) {
	return c.verify(ctx, pathVerify, imageDataURL)
}

func (c *Client) verify(ctx context.Context, path, imageDataURL string) (VerifyResult, error) {
	var out VerifyResult
	if err := c.postJSON(ctx, path, verifyRequest{Image: imageDataURL}, &out); err != nil {
		return VerifyResult{}, err
	}
	return out, nil
}

// Register enrolls a face image for the given user id and returns the backend message
func (c *Client) Register(ctx context.Context, userID, imageDataURL string) (string, error) {
	var out registerResult
	if err := c.postJSON(ctx, pathRegister, registerRequest{UserID: userID, Image: imageDataURL}, &out); err != nil {
		return "", err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		if msg == "" {
			msg = "enrollment rejected"
		}
		return "", perr.InvalidArgf("%s", msg)
	}
	return out.Message, nil
}

// Health probes the verification service readiness endpoint with
// bounded retries and exponential backoff
func (c *Client) Health(ctx context.Context) error {
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+pathHealth, nil)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "faceapi new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err == nil && resp.StatusCode == http.StatusOK {
			_ = drainAndClose(resp.Body)
			c.log.Debug().Dur("latency", lat).Msg("faceapi healthy")
			return nil
		}
		if err == nil {
			_ = drainAndClose(resp.Body)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempts >= c.opts.MaxRetries {
			if err != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "faceapi health probe failed")
			}
			return perr.Unavailablef("faceapi health probe got status %d", resp.StatusCode)
		}
		back := c.backoff(attempts)
		c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("faceapi health probe retrying")
		c.sleep(back)
		attempts++
	}
}

// postJSON issues one request with no retries; the caller owns retry policy
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "faceapi marshal failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "faceapi new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "faceapi request failed")
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("faceapi http response")

	// The service reports negative verification in the body with a 200,
	// so anything else is a transport level failure.
	if resp.StatusCode != http.StatusOK {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return perr.Unavailablef("faceapi status %d body %s", resp.StatusCode, string(tail))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "faceapi decode failed")
	}
	return nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}
