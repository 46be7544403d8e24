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

package image

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/icc"

	"github.com/db7559/qbank/pdf"
)

func newWriter(t *testing.T) (*pdf.Writer, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	w, err := pdf.NewWriter(buf)
	if err != nil {
		t.Fatal(err)
	}
	return w, buf
}

// rgbProfile returns a minimal RGB display profile.
func rgbProfile() []byte {
	p := &icc.Profile{
		Version:    icc.Version2_1_0,
		ColorSpace: icc.RGBSpace,
		PCS:        icc.PCSXYZSpace,
	}
	return p.Encode()
}

func gradient(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: alpha})
		}
	}
	return img
}

func TestEmbedOpaque(t *testing.T) {
	w, buf := newWriter(t)
	e := NewEmbedder(w, nil)
	_, err := e.Embed(gradient(16, 8, 255), nil)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"/Subtype /Image", "/Width 16", "/Height 8", "/FlateDecode", "/DeviceRGB"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(out, "/SMask") {
		t.Error("opaque image has a soft mask")
	}
}

func TestEmbedAlpha(t *testing.T) {
	w, buf := newWriter(t)
	e := NewEmbedder(w, nil)
	_, err := e.Embed(gradient(4, 4, 100), nil)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "/SMask") || !strings.Contains(out, "/DeviceGray") {
		t.Error("missing soft mask")
	}
}

func TestEmbedJPEG(t *testing.T) {
	data := &bytes.Buffer{}
	err := jpeg.Encode(data, gradient(32, 32, 255), nil)
	if err != nil {
		t.Fatal(err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	w, buf := newWriter(t)
	e := NewEmbedder(w, &Options{ICCProfile: rgbProfile()})
	_, err = e.Embed(img, data.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	if !bytes.Contains(out, []byte("/DCTDecode")) {
		t.Error("JPEG was not passed through")
	}
	if !bytes.Contains(out, data.Bytes()) {
		t.Error("JPEG data was modified")
	}
	if !bytes.Contains(out, []byte("/ICCBased")) {
		t.Error("missing ICC colour space")
	}
}

func TestCheckProfile(t *testing.T) {
	gray := (&icc.Profile{
		Version:    icc.Version2_1_0,
		ColorSpace: icc.GraySpace,
		PCS:        icc.PCSXYZSpace,
	}).Encode()

	cases := []struct {
		name string
		data []byte
		ok   bool
	}{
		{"rgb", rgbProfile(), true},
		{"gray", gray, false},
		{"garbage", []byte("not a profile"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckProfile(c.data)
			if (err == nil) != c.ok {
				t.Errorf("CheckProfile: err = %v", err)
			}
		})
	}
}

func TestLoadProfile(t *testing.T) {
	profile := rgbProfile()
	path := filepath.Join(t.TempDir(), "rgb.icc")
	if err := os.WriteFile(path, profile, 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, profile) {
		t.Error("profile data changed while loading")
	}

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.icc"))
	if err == nil {
		t.Error("missing file was accepted")
	}
}

func TestDownsample(t *testing.T) {
	img := gradient(200, 100, 255)
	small := downsample(img, 5000)
	b := small.Bounds()
	if b.Dx()*b.Dy() > 5000 {
		t.Errorf("downsampled image too large: %v", b)
	}
	if b.Dx() != 2*b.Dy() {
		t.Errorf("aspect ratio changed: %v", b)
	}
	if downsample(img, 0) != image.Image(img) {
		t.Error("image changed without a limit")
	}

	w, buf := newWriter(t)
	e := NewEmbedder(w, &Options{MaxPixels: 5000})
	if _, err := e.Embed(img, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "/Width 200") {
		t.Error("image was not downsampled")
	}
}

func TestEmbedEmpty(t *testing.T) {
	w, _ := newWriter(t)
	_, err := NewEmbedder(w, nil).Embed(image.NewRGBA(image.Rectangle{}), nil)
	if err == nil {
		t.Error("empty image accepted")
	}
}
