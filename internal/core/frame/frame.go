// Package frame turns camera frames into the wire format the
// verification service accepts: a bounded-width JPEG wrapped in a
// base64 data URL.
package frame

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"strings"

	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"

	"golang.org/x/image/draw"
)

const (
	// DefaultMaxWidth bounds the encoded frame so a phone camera frame
	// does not ship megabytes per poll tick
	DefaultMaxWidth = 960

	// DefaultJPEGQuality matches what the verification service was tuned on
	DefaultJPEGQuality = 80

	jpegPrefix = "data:image/jpeg;base64,"
	pngPrefix  = "data:image/png;base64,"
)

// Options controls encoding
type Options struct {
	MaxWidth    int
	JPEGQuality int
}

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	return o
}

// EncodeDataURL downscales img to at most MaxWidth (preserving aspect
// ratio), JPEG-encodes it, and wraps it as a data URL
func EncodeDataURL(img image.Image, opts Options) (string, error) {
	o := opts.withDefaults()

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return "", perr.InvalidArgf("empty frame %dx%d", b.Dx(), b.Dy())
	}

	if b.Dx() > o.MaxWidth {
		h := b.Dy() * o.MaxWidth / b.Dx()
		if h < 1 {
			h = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, o.MaxWidth, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: o.JPEGQuality}); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "jpeg encode failed")
	}

	return jpegPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURL parses a jpeg or png data URL back into raw image bytes.
// Used by the enroll CLI to validate files before shipping them.
func DecodeDataURL(s string) ([]byte, error) {
	var b64 string
	switch {
	case strings.HasPrefix(s, jpegPrefix):
		b64 = strings.TrimPrefix(s, jpegPrefix)
	case strings.HasPrefix(s, pngPrefix):
		b64 = strings.TrimPrefix(s, pngPrefix)
	default:
		return nil, perr.InvalidArgf("not an image data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "data URL base64 decode failed")
	}
	if len(raw) == 0 {
		return nil, perr.InvalidArgf("empty image payload")
	}
	return raw, nil
}

// FromJPEGBytes wraps already-encoded jpeg bytes as a data URL without
// re-encoding. The enroll path reads files straight from disk.
func FromJPEGBytes(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", perr.InvalidArgf("empty image payload")
	}
	return jpegPrefix + base64.StdEncoding.EncodeToString(raw), nil
}
