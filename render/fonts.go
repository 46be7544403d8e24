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

package render

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/db7559/qbank/font"
	"github.com/db7559/qbank/font/cjk"
	"github.com/db7559/qbank/font/truetype"
	"github.com/db7559/qbank/logging"
)

// FontSources lists the font files to try, by file name.  Each name is
// searched in the locations given by [font.Candidates].
type FontSources struct {
	Base   []string
	Symbol []string

	// GoSymbolFallback selects the Go Regular font as symbol font if none
	// of the Symbol files can be loaded.
	GoSymbolFallback bool
}

// DefaultFontSources are the font files used when nothing else is
// configured.
var DefaultFontSources = FontSources{
	Base:             []string{"IPAexGothic.ttf", "ipaexg.ttf"},
	Symbol:           []string{"NotoSansSymbols2-Regular.ttf", "DejaVuSans.ttf"},
	GoSymbolFallback: true,
}

// LoadFonts loads the base and symbol fonts.
//
// If no base font file can be loaded, the built-in Japanese font is used.
// The symbol font is nil if no symbol font file can be loaded and the Go
// fallback is disabled.  An error is only returned if a fallback font
// cannot be set up.
func LoadFonts(src *FontSources) (base, symbol font.Font, err error) {
	base, err = loadFirst(src.Base)
	if err != nil {
		logging.Logger().Warn("using built-in font", "error", err)
		base = cjk.New()
	}

	symbol, err = loadFirst(src.Symbol)
	if err == nil {
		return base, symbol, nil
	}
	if !src.GoSymbolFallback {
		logging.Logger().Warn("no symbol font", "error", err)
		return base, nil, nil
	}
	logging.Logger().Debug("using Go Regular as symbol font", "error", err)
	symbol, err = truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, nil, fmt.Errorf("symbol font fallback: %w", err)
	}
	return base, symbol, nil
}

// loadFirst returns the first of the named fonts which can be located
// and loaded.
func loadFirst(names []string) (font.Font, error) {
	var errs []error
	for _, name := range names {
		fname, err := font.Locate(name, font.Candidates(name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		f, err := truetype.Load(fname)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		logging.Logger().Debug("font loaded", "file", fname, "name", f.PostScriptName())
		return f, nil
	}
	if len(errs) == 0 {
		return nil, &font.NotFoundError{Name: "(none configured)"}
	}
	return nil, errors.Join(errs...)
}
