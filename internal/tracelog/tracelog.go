// Package tracelog collects the trace lines a bridge invocation writes and archives them per correlation id.
package tracelog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"inquirysync/internal/storage"
)

// ErrArchiveDisabled is returned by archive reads when no object store is configured.
var ErrArchiveDisabled = errors.New("trace log archive is disabled")

// Sink receives free-form trace lines.
type Sink interface {
	Trace(format string, args ...any)
}

// Key returns the object key the trace block of one operation is archived under.
// Each operation of a correlation chain gets its own object.
func Key(correlationID, operation string) string {
	return storage.ArchivePrefix + correlationID + "/" + operation + ".log"
}

// Archiver hands out per-invocation logs and reads archived blocks back.
// A nil store disables archiving; lines are still written to out.
type Archiver struct {
	out   io.Writer
	loc   *time.Location
	store storage.Storage
}

// NewArchiver creates an Archiver writing JSON lines to out with timestamps in loc.
func NewArchiver(out io.Writer, loc *time.Location, store storage.Storage) *Archiver {
	if loc == nil {
		loc = time.UTC
	}
	return &Archiver{out: out, loc: loc, store: store}
}

// Enabled reports whether blocks are archived to object storage.
func (a *Archiver) Enabled() bool {
	return a.store != nil
}

// Begin starts the trace log of one bridge invocation.
func (a *Archiver) Begin(ctx context.Context, correlationID, operation string) *Log {
	l := &Log{
		archiver:      a,
		correlationID: correlationID,
		operation:     operation,
		started:       time.Now(),
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		l.traceID = sc.TraceID().String()
	}
	return l
}

// Open streams the archived block of an operation.
func (a *Archiver) Open(ctx context.Context, correlationID, operation string) (io.ReadCloser, storage.ObjectInfo, error) {
	if a.store == nil {
		return nil, storage.ObjectInfo{}, ErrArchiveDisabled
	}
	return a.store.Get(ctx, Key(correlationID, operation))
}

// Presign returns a time-limited download URL for an archived block.
func (a *Archiver) Presign(ctx context.Context, correlationID, operation string, expiry time.Duration) (string, error) {
	if a.store == nil {
		return "", ErrArchiveDisabled
	}
	return a.store.PresignGet(ctx, Key(correlationID, operation), expiry)
}

// Delete removes an archived block.
func (a *Archiver) Delete(ctx context.Context, correlationID, operation string) error {
	if a.store == nil {
		return ErrArchiveDisabled
	}
	return a.store.Delete(ctx, Key(correlationID, operation))
}

// Log is the trace log of a single invocation. It is not safe for concurrent use.
type Log struct {
	archiver      *Archiver
	correlationID string
	operation     string
	traceID       string
	started       time.Time
	lines         []string
}

var _ Sink = (*Log)(nil)

// Trace records a line and writes it immediately as a JSON log entry.
func (l *Log) Trace(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	now := time.Now().In(l.archiver.loc)
	l.lines = append(l.lines, now.Format(time.RFC3339Nano)+" "+msg)

	entry := map[string]any{
		"ts":             now.Format(time.RFC3339Nano),
		"level":          "info",
		"component":      "tracelog",
		"operation":      l.operation,
		"correlation_id": l.correlationID,
		"msg":            msg,
	}
	if l.traceID != "" {
		entry["trace_id"] = l.traceID
	}
	l.write(entry)
}

// Lines returns the lines traced so far.
func (l *Log) Lines() []string {
	return append([]string(nil), l.lines...)
}

// Flush archives the collected block. It is a no-op when archiving is disabled or nothing was traced.
func (l *Log) Flush(ctx context.Context) error {
	if l.archiver.store == nil || len(l.lines) == 0 {
		return nil
	}

	block := strings.Join(l.lines, "\n") + "\n"
	_, err := l.archiver.store.Put(ctx, Key(l.correlationID, l.operation), strings.NewReader(block), storage.PutObjectOptions{
		Size:        int64(len(block)),
		ContentType: "text/plain; charset=utf-8",
		Metadata: map[string]string{
			"operation":   l.operation,
			"duration-ms": fmt.Sprint(time.Since(l.started).Milliseconds()),
		},
	})
	if err != nil {
		l.write(map[string]any{
			"ts":             time.Now().In(l.archiver.loc).Format(time.RFC3339Nano),
			"level":          "error",
			"component":      "tracelog",
			"event":          "archive_failed",
			"correlation_id": l.correlationID,
			"error_message":  err.Error(),
		})
		return fmt.Errorf("archive trace log: %w", err)
	}
	return nil
}

func (l *Log) write(entry map[string]any) {
	if l.archiver.out == nil {
		return
	}
	b, err := json.Marshal(entry)
	if err != nil {
		log.Printf("failed to marshal trace log entry: %v", err)
		return
	}
	_, _ = l.archiver.out.Write(append(b, '\n'))
}
