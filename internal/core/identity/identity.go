// Package identity derives the synthetic credentials backing a recognized face.
//
// The verification service only knows identities; the account backend only
// knows email and password. The bridge is a deterministic derivation so the
// same face always maps to the same account without storing any password
// in the clear outside the device.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"unicode"

	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/text/unicode/norm"
)

// EmailDomain is the synthetic domain for provisioned facial accounts
const EmailDomain = "facial.sembet.local"

// hkdf info separates this derivation from any other use of the device secret
const passwordInfo = "facial-password-v1"

// Credentials are the derived login pair for one identity
type Credentials struct {
	Identity string
	Email    string
	Password string
}

// Normalize canonicalizes a raw identity: NFKC fold, lower case, and
// spaces collapsed to single dots. Two spellings of the same identity
// must derive the same account.
func Normalize(raw string) (string, error) {
	s := norm.NFKC.String(strings.TrimSpace(raw))
	s = strings.ToLower(s)

	var b strings.Builder
	lastDot := true // also swallows leading separators
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDot = false
		case r == '.' || r == '-' || r == '_' || unicode.IsSpace(r):
			if !lastDot {
				b.WriteRune('.')
				lastDot = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), ".")
	if out == "" {
		return "", perr.InvalidArgf("identity %q normalizes to empty", raw)
	}
	return out, nil
}

// Derive builds the synthetic credentials for a raw identity under the
// device secret. The password is the hex HKDF-SHA256 expansion of the
// normalized identity, so it is stable across runs of the same device
// and useless on any other.
func Derive(raw string, deviceSecret []byte) (Credentials, error) {
	if len(deviceSecret) == 0 {
		return Credentials{}, perr.InvalidArgf("empty device secret")
	}
	slug, err := Normalize(raw)
	if err != nil {
		return Credentials{}, err
	}

	r := hkdf.New(sha256.New, deviceSecret, []byte(slug), []byte(passwordInfo))
	key := make([]byte, 24)
	if _, err := io.ReadFull(r, key); err != nil {
		return Credentials{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "hkdf expand failed")
	}

	return Credentials{
		Identity: slug,
		Email:    slug + "@" + EmailDomain,
		Password: hex.EncodeToString(key),
	}, nil
}
