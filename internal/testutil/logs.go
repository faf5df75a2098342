package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecord is a captured slog record, flattened for assertions.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// LogRecorder is a slog.Handler that keeps every record in memory.
type LogRecorder struct {
	mu      *sync.Mutex
	records *[]LogRecord
	attrs   []slog.Attr
}

// NewLogRecorder returns a recorder and a logger writing into it.
func NewLogRecorder() (*LogRecorder, *slog.Logger) {
	rec := &LogRecorder{mu: &sync.Mutex{}, records: &[]LogRecord{}}
	return rec, slog.New(rec)
}

// Enabled implements slog.Handler; every level is recorded.
func (r *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler.
func (r *LogRecorder) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]string, len(r.attrs)+record.NumAttrs())
	for _, a := range r.attrs {
		attrs[a.Key] = a.Value.String()
	}
	record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	*r.records = append(*r.records, LogRecord{Level: record.Level, Message: record.Message, Attrs: attrs})
	return nil
}

// WithAttrs implements slog.Handler.
func (r *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *r
	next.attrs = append(append([]slog.Attr{}, r.attrs...), attrs...)
	return &next
}

// WithGroup implements slog.Handler. Groups are flattened.
func (r *LogRecorder) WithGroup(string) slog.Handler { return r }

// Records returns a copy of everything logged so far.
func (r *LogRecorder) Records() []LogRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogRecord(nil), *r.records...)
}

// AtLevel returns the records logged at exactly level.
func (r *LogRecorder) AtLevel(level slog.Level) []LogRecord {
	var out []LogRecord
	for _, rec := range r.Records() {
		if rec.Level == level {
			out = append(out, rec)
		}
	}
	return out
}
