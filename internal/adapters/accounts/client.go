// Package accounts provides the HTTP client for the application account backend
package accounts

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
	defaultTimeout = 10 * time.Second
	defaultUA      = "sembet-agent"

	pathLogin = "/login"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client authenticates derived credentials against the account backend
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("accounts"),
	}
}

// Login attempts a credential login. It returns (false, nil) when the
// backend rejects the credentials, which is an expected signal and not
// an error; errors mean the answer never arrived.
func (c *Client) Login(ctx context.Context, email, password string) (bool, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeUnknown, "accounts marshal failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+pathLogin, bytes.NewReader(body))
	if err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeUnknown, "accounts new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "accounts login request failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		var out loginResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
			return false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "accounts decode failed")
		}
		if !out.Success {
			c.log.Debug().Str("email", email).Msg("accounts rejected credentials")
			return false, nil
		}
		return true, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		c.log.Debug().Str("email", email).Int("status", resp.StatusCode).Msg("accounts rejected credentials")
		return false, nil
	default:
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return false, perr.Unavailablef("accounts status %d body %s", resp.StatusCode, string(tail))
	}
}
