package middleware

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggerWithWriter logs each HTTP request as one JSON object per line on w.
// Fields: ts, level, request_id (from RequestID), method, path, status, latency (ms),
// and correlation_id when an event handler set one.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		level := "info"
		if status >= fiber.StatusInternalServerError {
			level = "error"
		}

		entry := map[string]any{
			"ts":         time.Now().In(loc).Format(time.RFC3339Nano),
			"level":      level,
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if cid := string(c.Response().Header.Peek(CorrelationIDHeader)); cid != "" {
			entry["correlation_id"] = cid
		}
		if b, mErr := json.Marshal(entry); mErr == nil {
			_, _ = w.Write(append(b, '\n'))
		}

		return err
	}
}
