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

// Package config handles qbank configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/rect"

	"github.com/db7559/qbank/fetch"
	"github.com/db7559/qbank/image"
	"github.com/db7559/qbank/render"
)

// Config is the root configuration structure.
type Config struct {
	Page    PageConfig    `yaml:"page"`
	Margins MarginsConfig `yaml:"margins"`
	Text    TextConfig    `yaml:"text"`
	Fonts   FontsConfig   `yaml:"fonts"`
	Images  ImagesConfig  `yaml:"images"`
	Labels  LabelsConfig  `yaml:"labels"`
	Output  OutputConfig  `yaml:"output"`
}

// PageConfig selects the paper size.  Width and Height, if both set,
// take precedence over Size.
type PageConfig struct {
	Size   string  `yaml:"size"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// MarginsConfig holds the page margins in PDF units.
type MarginsConfig struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// TextConfig holds font size and vertical spacing.
type TextConfig struct {
	FontSize     float64 `yaml:"font_size"`
	LineHeight   float64 `yaml:"line_height"`
	ImagePadding float64 `yaml:"image_padding"`
	Separator    float64 `yaml:"separator"`
}

// FontsConfig lists the font files to try, in order.
type FontsConfig struct {
	Base              []string `yaml:"base"`
	Symbol            []string `yaml:"symbol"`
	GoSymbolFallback  bool     `yaml:"go_symbol_fallback"`
	SubstituteSymbols bool     `yaml:"substitute_symbols"`
}

// ImagesConfig holds image download and embedding settings.
type ImagesConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	MaxPixels       int           `yaml:"max_pixels"`
	MaxDecodePixels int64         `yaml:"max_decode_pixels"`
	JPEGQuality     int           `yaml:"jpeg_quality"`

	// ICCProfile is the path of an RGB ICC profile.  If it is empty,
	// images use the DeviceRGB colour space.
	ICCProfile string `yaml:"icc_profile"`
}

// LabelsConfig holds the texts printed in front of the record fields.
type LabelsConfig struct {
	Question    string `yaml:"question"`
	Choice      string `yaml:"choice"`
	Answer      string `yaml:"answer"`
	Category    string `yaml:"category"`
	ImageFailed string `yaml:"image_failed"`
	ImageError  string `yaml:"image_error"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the default configuration.
func Default() *Config {
	labels := render.DefaultLabels
	fonts := render.DefaultFontSources
	return &Config{
		Page: PageConfig{
			Size: "A4",
		},
		Margins: MarginsConfig{
			Top:    40,
			Bottom: 60,
			Left:   40,
			Right:  40,
		},
		Text: TextConfig{
			FontSize:     12,
			LineHeight:   18,
			ImagePadding: 20,
			Separator:    20,
		},
		Fonts: FontsConfig{
			Base:             fonts.Base,
			Symbol:           fonts.Symbol,
			GoSymbolFallback: fonts.GoSymbolFallback,
		},
		Images: ImagesConfig{
			Timeout:         fetch.DefaultTimeout,
			MaxPixels:       4_000_000,
			MaxDecodePixels: fetch.DefaultMaxPixels,
		},
		Labels: LabelsConfig{
			Question:    labels.Question,
			Choice:      labels.Choice,
			Answer:      labels.Answer,
			Category:    labels.Category,
			ImageFailed: labels.ImageFailed,
			ImageError:  labels.ImageError,
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// Load loads configuration from a file.  Settings missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if _, err := os.Stat("qbank.yaml"); err == nil {
		return "qbank.yaml"
	}
	if _, err := os.Stat("config/qbank.yaml"); err == nil {
		return "config/qbank.yaml"
	}
	return "qbank.yaml"
}

// PageSize returns the configured page rectangle.
func (c *Config) PageSize() (rect.Rect, error) {
	if c.Page.Width > 0 && c.Page.Height > 0 {
		return rect.Rect{URx: c.Page.Width, URy: c.Page.Height}, nil
	}
	return render.PaperSize(c.Page.Size)
}

// Validate checks the configuration for values which cannot work.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.PageSize(); err != nil {
		errs = append(errs, err)
	}
	if c.Text.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("text.font_size must be positive, got %g", c.Text.FontSize))
	}
	if c.Text.LineHeight < c.Text.FontSize {
		errs = append(errs, fmt.Errorf("text.line_height %g is smaller than the font size", c.Text.LineHeight))
	}
	if c.Images.Timeout < 0 {
		errs = append(errs, errors.New("images.timeout must not be negative"))
	}
	if c.Images.MaxDecodePixels < 0 {
		errs = append(errs, errors.New("images.max_decode_pixels must not be negative"))
	}
	if q := c.Images.JPEGQuality; q < 0 || q > 100 {
		errs = append(errs, fmt.Errorf("images.jpeg_quality %d out of range", q))
	}
	if strings.Count(c.Labels.Choice, "%d") != 1 {
		errs = append(errs, fmt.Errorf("labels.choice %q needs exactly one %%d", c.Labels.Choice))
	}
	return errors.Join(errs...)
}

// FontSources returns the font files to try.
func (c *Config) FontSources() *render.FontSources {
	return &render.FontSources{
		Base:             c.Fonts.Base,
		Symbol:           c.Fonts.Symbol,
		GoSymbolFallback: c.Fonts.GoSymbolFallback,
	}
}

// RenderOptions converts the configuration into layout options.  The
// fonts are not loaded; use FontSources and [render.LoadFonts] for this.
func (c *Config) RenderOptions() (*render.Options, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	page, _ := c.PageSize()

	opts := render.Default()
	opts.PageSize = page
	opts.Margins = render.Margins{
		Top:    c.Margins.Top,
		Bottom: c.Margins.Bottom,
		Left:   c.Margins.Left,
		Right:  c.Margins.Right,
	}
	opts.FontSize = c.Text.FontSize
	opts.LineHeight = c.Text.LineHeight
	opts.ImagePadding = c.Text.ImagePadding
	opts.Separator = c.Text.Separator
	opts.SubstituteSymbols = c.Fonts.SubstituteSymbols
	opts.Labels = render.Labels{
		Question:    c.Labels.Question,
		Choice:      c.Labels.Choice,
		Answer:      c.Labels.Answer,
		Category:    c.Labels.Category,
		ImageFailed: c.Labels.ImageFailed,
		ImageError:  c.Labels.ImageError,
	}
	fetcher := fetch.New(c.Images.Timeout)
	if c.Images.MaxDecodePixels > 0 {
		fetcher.MaxPixels = c.Images.MaxDecodePixels
	}
	opts.Images = fetcher
	opts.ImageOptions = &image.Options{
		MaxPixels:   c.Images.MaxPixels,
		JPEGQuality: c.Images.JPEGQuality,
	}
	if c.Images.ICCProfile != "" {
		profile, err := image.LoadProfile(c.Images.ICCProfile)
		if err != nil {
			return nil, fmt.Errorf("images.icc_profile: %w", err)
		}
		opts.ImageOptions.ICCProfile = profile
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
