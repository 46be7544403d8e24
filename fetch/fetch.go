// qbank - a study-question browser with PDF export
// Copyright (C) 2026  The qbank Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package fetch downloads and decodes the images referenced by question
// records.
//
// All failures are reported as errors matching [ErrUnavailable], so that
// callers can draw a placeholder instead of the image.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// DefaultTimeout is the time allowed for downloading one image.
const DefaultTimeout = 5 * time.Second

// DefaultMaxBytes limits the size of a downloaded image file.
const DefaultMaxBytes = 32 << 20

// DefaultMaxPixels limits the number of pixels of a decoded image.
// Compressed files can be much smaller than the decoded image, so this
// limit is checked before any pixel data is decoded.
const DefaultMaxPixels = 40_000_000

// Image is a decoded image together with the file it was decoded from.
type Image struct {
	image.Image

	// Format is the format name reported by the decoder, e.g. "jpeg".
	Format string

	// MIME is the detected media type of Data.
	MIME string

	Data []byte
}

// JPEG returns the file contents if the image is a JPEG file, and nil
// otherwise.
func (img *Image) JPEG() []byte {
	if img.Format == "jpeg" {
		return img.Data
	}
	return nil
}

// Source provides the images for question records.
type Source interface {
	Fetch(ctx context.Context, link string) (*Image, error)
}

// Fetcher downloads images over HTTP.  Links without an http or https
// scheme are read from the local file system.
type Fetcher struct {
	Client    *http.Client
	Timeout   time.Duration
	MaxBytes  int64
	MaxPixels int64
	UserAgent string
}

var _ Source = (*Fetcher)(nil)

// New returns a Fetcher with the given per-image timeout.
// A zero timeout selects DefaultTimeout.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		Timeout:   timeout,
		MaxBytes:  DefaultMaxBytes,
		MaxPixels: DefaultMaxPixels,
		UserAgent: "qbank",
	}
}

// Fetch downloads and decodes the image at link.
// Google Drive share links are rewritten using [RewriteDriveLink].
func (f *Fetcher) Fetch(ctx context.Context, link string) (*Image, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, &UnavailableError{URL: link, Err: errors.New("empty link")}
	}
	target := RewriteDriveLink(link)

	data, err := f.read(ctx, target)
	if err != nil {
		return nil, &UnavailableError{URL: link, Err: err}
	}
	img, err := Decode(data, f.MaxPixels)
	if err != nil {
		return nil, &UnavailableError{URL: link, Err: err}
	}
	return img, nil
}

func (f *Fetcher) read(ctx context.Context, target string) ([]byte, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	switch u.Scheme {
	case "http", "https":
		// handled below
	case "file":
		return readFile(u.Path, maxBytes)
	case "":
		return readFile(target, maxBytes)
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return readLimited(resp.Body, maxBytes)
}

func readFile(name string, maxBytes int64) ([]byte, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return readLimited(fd, maxBytes)
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("image larger than %d bytes", maxBytes)
	}
	return data, nil
}

// Decode checks that data contains an image and decodes it.
// Images with more than maxPixels pixels are rejected without decoding
// the pixel data.  If maxPixels is zero, DefaultMaxPixels is used.
func Decode(data []byte, maxPixels int64) (*Image, error) {
	if len(data) == 0 {
		return nil, errors.New("no data")
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("not an image (%s)", mtype.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("image too large (%dx%d pixels)", cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Image{
		Image:  img,
		Format: format,
		MIME:   mtype.String(),
		Data:   data,
	}, nil
}
