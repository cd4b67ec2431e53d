package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// WebhookKeyHeader carries the shared key the host platform was registered with.
const WebhookKeyHeader = "X-Webhook-Key"

// WebhookKey rejects requests that do not present key, either in the X-Webhook-Key header
// or in the "code" query parameter. An empty key disables the check.
func WebhookKey(key string) fiber.Handler {
	if key == "" {
		return Noop()
	}
	want := []byte(key)

	return func(c *fiber.Ctx) error {
		got := c.Get(WebhookKeyHeader)
		if got == "" {
			got = c.Query("code")
		}
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}
