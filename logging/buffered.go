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

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// BufferedHandler is a slog.Handler which keeps all records in memory,
// one JSON object per line.  Tests use it to check what was logged.
//
//	h := logging.NewBufferedHandler(nil)
//	logging.SetLogger(slog.New(h))
//	defer logging.SetLogger(nil)
type BufferedHandler struct {
	level  slog.Leveler
	shared *sharedBuffer
	attrs  []slog.Attr
	groups []string
}

type sharedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewBufferedHandler creates a handler with an empty buffer.
// If opts is nil or has no level, all records are kept.
func NewBufferedHandler(opts *slog.HandlerOptions) *BufferedHandler {
	h := &BufferedHandler{shared: &sharedBuffer{}}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler.
func (h *BufferedHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *BufferedHandler) Handle(_ context.Context, r slog.Record) error {
	e := entry{
		Level:    r.Level.String(),
		Message:  r.Message,
		DateTime: r.Time.Format(time.DateTime),
	}
	for _, a := range h.attrs {
		e.Attrs = append(e.Attrs, h.prefixed(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs = append(e.Attrs, h.prefixed(a))
		return true
	})

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	h.shared.buf.Write(data)
	h.shared.buf.WriteByte('\n')
	return nil
}

func (h *BufferedHandler) prefixed(a slog.Attr) string {
	if len(h.groups) == 0 {
		return a.String()
	}
	return strings.Join(h.groups, ".") + "." + a.String()
}

// WithAttrs implements slog.Handler.
func (h *BufferedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	res := *h
	res.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &res
}

// WithGroup implements slog.Handler.
func (h *BufferedHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	res := *h
	res.groups = append(append([]string(nil), h.groups...), name)
	return &res
}

// String returns everything logged so far.
func (h *BufferedHandler) String() string {
	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	return h.shared.buf.String()
}

// Contains reports whether the captured output contains s.
func (h *BufferedHandler) Contains(s string) bool {
	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	return bytes.Contains(h.shared.buf.Bytes(), []byte(s))
}

// Count returns the number of records with the given level and message.
func (h *BufferedHandler) Count(level slog.Level, msg string) int {
	n := 0
	for _, line := range strings.Split(strings.TrimSpace(h.String()), "\n") {
		if line == "" {
			continue
		}
		var e entry
		if json.Unmarshal([]byte(line), &e) != nil {
			continue
		}
		if e.Level == level.String() && e.Message == msg {
			n++
		}
	}
	return n
}

// Reset discards all captured output.
func (h *BufferedHandler) Reset() {
	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	h.shared.buf.Reset()
}

type entry struct {
	Level    string   `json:"level"`
	Message  string   `json:"message"`
	DateTime string   `json:"datetime"`
	Attrs    []string `json:"attrs,omitempty"`
}
