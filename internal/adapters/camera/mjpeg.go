package camera

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
	"github.com/DeboraAmaral/sprint04-iot/internal/platform/logger"
)

const defaultWarmup = 5 * time.Second

type mjpegOpener struct{ cfg Config }

func (o *mjpegOpener) Open(ctx context.Context) (Device, error) {
	warmup := o.cfg.WarmupTimeout
	if warmup <= 0 {
		warmup = defaultWarmup
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.URL, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "camera: bad stream url")
	}

	// The stream request outlives Open; cancellation moves to the device
	streamCtx, cancel := context.WithCancel(context.Background())
	req = req.Clone(streamCtx)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, perr.Wrapf(err, perr.ErrorCodeDeviceUnavailable, "camera: stream connect failed")
	}
	if resp.StatusCode != http.StatusOK {
		cancel()
		_ = resp.Body.Close()
		return nil, perr.DeviceUnavailablef("camera: stream status %d", resp.StatusCode)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		cancel()
		_ = resp.Body.Close()
		return nil, perr.DeviceUnavailablef("camera: stream is not multipart mjpeg (%q)", resp.Header.Get("Content-Type"))
	}

	d := &mjpegDevice{
		cancel: cancel,
		body:   resp.Body,
		log:    *logger.Named("camera"),
		frames: make(chan struct{}, 1),
	}
	go d.readLoop(multipart.NewReader(resp.Body, params["boundary"]))

	// wait for the first frame so a dead stream fails Open, not the first tick
	warmCtx, warmCancel := context.WithTimeout(ctx, warmup)
	defer warmCancel()
	if _, err := d.Snapshot(warmCtx); err != nil {
		_ = d.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeDeviceUnavailable, "camera: no frame within warmup")
	}
	return d, nil
}

// mjpegDevice reads parts in the background and keeps only the newest
// frame; Snapshot never sees a stale queue
type mjpegDevice struct {
	cancel context.CancelFunc
	body   io.ReadCloser
	log    logger.Logger

	mu      sync.Mutex
	latest  []byte
	readErr error
	closed  bool

	frames chan struct{} // signal a fresh frame, capacity 1
}

func (d *mjpegDevice) readLoop(mr *multipart.Reader) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			d.mu.Lock()
			if !d.closed {
				d.readErr = err
			}
			d.mu.Unlock()
			d.signal()
			return
		}
		raw, err := io.ReadAll(io.LimitReader(part, 8<<20))
		_ = part.Close()
		if err != nil || len(raw) == 0 {
			continue
		}
		d.mu.Lock()
		d.latest = raw
		d.mu.Unlock()
		d.signal()
	}
}

func (d *mjpegDevice) signal() {
	select {
	case d.frames <- struct{}{}:
	default:
	}
}

func (d *mjpegDevice) Snapshot(ctx context.Context) (image.Image, error) {
	for {
		d.mu.Lock()
		raw := d.latest
		err := d.readErr
		closed := d.closed
		d.mu.Unlock()

		if closed {
			return nil, perr.DeviceUnavailablef("camera: device closed")
		}
		if raw != nil {
			img, decErr := jpeg.Decode(bytes.NewReader(raw))
			if decErr != nil {
				// corrupt part; drop it and wait for the next one
				d.mu.Lock()
				if bytes.Equal(d.latest, raw) {
					d.latest = nil
				}
				d.mu.Unlock()
				continue
			}
			return img, nil
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDeviceUnavailable, "camera: stream ended")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-d.frames:
		}
	}
}

func (d *mjpegDevice) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	err := d.body.Close()
	d.signal() // wake any blocked Snapshot
	if err != nil && !strings.Contains(err.Error(), "closed") {
		d.log.Warn().Err(err).Msg("camera stream close")
	}
	return nil
}
