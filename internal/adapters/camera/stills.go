package camera

import (
	"context"
	"image"
	_ "image/jpeg" // stills may be jpeg
	_ "image/png"  // or png
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	perr "github.com/DeboraAmaral/sprint04-iot/internal/platform/errors"
)

type stillsOpener struct{ cfg Config }

func (o *stillsOpener) Open(_ context.Context) (Device, error) {
	entries, err := os.ReadDir(o.cfg.StillsDir)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDeviceUnavailable, "camera: stills dir unreadable")
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, filepath.Join(o.cfg.StillsDir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, perr.DeviceUnavailablef("camera: no stills in %s", o.cfg.StillsDir)
	}
	sort.Strings(files)

	return &stillsDevice{files: files}, nil
}

// stillsDevice cycles a fixed set of image files as frames
type stillsDevice struct {
	mu     sync.Mutex
	files  []string
	next   int
	closed bool
}

func (d *stillsDevice) Snapshot(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, perr.DeviceUnavailablef("camera: device closed")
	}
	path := d.files[d.next%len(d.files)]
	d.next++
	d.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDeviceUnavailable, "camera: open still failed")
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDeviceUnavailable, "camera: decode still %s failed", filepath.Base(path))
	}
	return img, nil
}

func (d *stillsDevice) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}
