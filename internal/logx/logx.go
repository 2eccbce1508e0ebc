package logx

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pkt.systems/pslog"
)

// Open returns a structured logger writing to path at the given level. The
// pager owns the terminal, so with an empty path everything is discarded.
// The returned closer releases the log file.
func Open(path, level string) (pslog.Logger, io.Closer, error) {
	if path == "" {
		return New(io.Discard, level), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

// New builds a structured logger on w. Unknown levels fall back to info.
func New(w io.Writer, level string) pslog.Logger {
	opts := pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
		MinLevel:      pslog.InfoLevel,
	}
	switch level {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return pslog.NewWithOptions(w, opts)
}

// Ctx returns the logger bound to ctx.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithDocument annotates log with a document name when available.
func WithDocument(log pslog.Logger, name string) pslog.Logger {
	if name != "" {
		log = log.With("doc", name)
	}
	return log
}
