// Package logx wraps log/slog with a compact single-line text handler,
// used by both CLI entry points for configuration and assembly
// diagnostics.
package logx

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// handler formats records as "<time> <LEVEL>: <msg> [attr=value ...]",
// one line per record, guarded by a mutex so that records logged from
// concurrent goroutines never interleave within a line.
type handler struct {
	out   io.Writer
	mu    *sync.Mutex
	level slog.Leveler
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *handler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *handler) WithGroup(_ string) slog.Handler      { return h }

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{r.Time.Format("15:04:05"), r.Level.String() + ":", r.Message}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, a.String())
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, strings.Join(parts, " ")+"\n")
	return err
}

// New returns a logger writing to out at the given minimum level.
func New(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(&handler{out: out, mu: &sync.Mutex{}, level: level})
}
