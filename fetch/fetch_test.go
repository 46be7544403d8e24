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

package fetch

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func pngData(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRewriteDriveLink(t *testing.T) {
	cases := []struct{ in, want string }{
		{
			"https://drive.google.com/file/d/1AbC_xyz/view?usp=sharing",
			"https://drive.google.com/uc?export=view&id=1AbC_xyz",
		},
		{
			"https://drive.google.com/file/d/1AbC_xyz?usp=sharing",
			"https://drive.google.com/uc?export=view&id=1AbC_xyz",
		},
		{
			"https://drive.google.com/file/d/1AbC_xyz",
			"https://drive.google.com/uc?export=view&id=1AbC_xyz",
		},
		{"https://drive.google.com/drive/folders/xyz", "https://drive.google.com/drive/folders/xyz"},
		{"https://drive.google.com/file/d/", "https://drive.google.com/file/d/"},
		{"https://example.com/file/d/abc/view", "https://example.com/file/d/abc/view"},
		{"", ""},
	}
	for _, test := range cases {
		if got := RewriteDriveLink(test.in); got != test.want {
			t.Errorf("RewriteDriveLink(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestFetch(t *testing.T) {
	data := pngData(t, 30, 20)
	mux := http.NewServeMux()
	mux.HandleFunc("/ok.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	})
	mux.HandleFunc("/page.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>sign in</body></html>"))
	})
	mux.HandleFunc("/broken.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(data[:len(data)/2])
	})
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := New(200 * time.Millisecond)
	ctx := context.Background()

	img, err := f.Fetch(ctx, srv.URL+"/ok.png")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("wrong size %v", b)
	}
	if img.Format != "png" || img.MIME != "image/png" {
		t.Errorf("wrong format %q / %q", img.Format, img.MIME)
	}
	if img.JPEG() != nil {
		t.Error("PNG reported as JPEG")
	}

	for _, path := range []string{"/missing.png", "/page.html", "/broken.png", "/slow.png"} {
		_, err := f.Fetch(ctx, srv.URL+path)
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("%s: expected ErrUnavailable, got %v", path, err)
		}
		var ue *UnavailableError
		if !errors.As(err, &ue) || ue.URL != srv.URL+path {
			t.Errorf("%s: wrong error %v", path, err)
		}
	}
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngData(t, 1, 1))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(0).Fetch(ctx, srv.URL)
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestFetchFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(name, pngData(t, 4, 4), 0o644); err != nil {
		t.Fatal(err)
	}
	f := New(0)
	if _, err := f.Fetch(context.Background(), name); err != nil {
		t.Error(err)
	}
	if _, err := f.Fetch(context.Background(), "file://"+name); err != nil {
		t.Error(err)
	}
	_, err := f.Fetch(context.Background(), "ftp://example.com/x.png")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestDecodeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngData(t, 64, 64))
	}))
	defer srv.Close()

	f := New(0)
	f.MaxBytes = 10
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("oversized file accepted: %v", err)
	}
}

// bigPNG returns a PNG file header announcing a w×h greyscale image.
// The pixel data is missing, so only the image size can be decoded.
func bigPNG(w, h uint32) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // greyscale

	chunk := append([]byte("IHDR"), ihdr...)
	binary.Write(buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	binary.Write(buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodePixelLimit(t *testing.T) {
	cases := []struct {
		name      string
		data      []byte
		maxPixels int64
		ok        bool
	}{
		{"default limit", pngData(t, 10, 10), 0, true},
		{"exact", pngData(t, 10, 10), 100, true},
		{"over", pngData(t, 11, 10), 100, false},
		{"huge header", bigPNG(60000, 60000), 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			img, err := Decode(c.data, c.maxPixels)
			if c.ok {
				if err != nil {
					t.Fatal(err)
				}
				if img.Bounds().Dx() != 10 {
					t.Errorf("width = %d", img.Bounds().Dx())
				}
			} else if err == nil {
				t.Error("oversized image was decoded")
			}
		})
	}
}

func TestFetchPixelLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bigPNG(20000, 20000))
	}))
	defer srv.Close()

	_, err := New(0).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("oversized image accepted: %v", err)
	}
}
