package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"inquirysync/internal/storage"
	"inquirysync/internal/tracelog"
)

const presignExpiry = 15 * time.Minute

// GetTraceLog streams the archived trace log of one operation in a correlation chain,
// or returns a pre-signed URL with ?presign=true.
//
// @Summary  Read an archived trace log
// @Tags     trace-logs
// @Produce  plain
// @Param    correlation_id  path   string  true   "Correlation id"
// @Param    operation       path   string  true   "Bridge operation"  Enums(create, update)
// @Param    presign         query  bool    false  "Return a pre-signed download URL instead of the content"
// @Success  200
// @Failure  404  {object}  errorPayload
// @Router   /trace-logs/{correlation_id}/{operation} [get]
func GetTraceLog(archiver *tracelog.Archiver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, op := c.Params("correlation_id"), c.Params("operation")
		ctx := c.UserContext()

		if c.QueryBool("presign") {
			u, err := archiver.Presign(ctx, id, op, presignExpiry)
			if err != nil {
				return traceLogError(c, err)
			}
			return c.JSON(fiber.Map{"url": u, "expires_in": int(presignExpiry.Seconds())})
		}

		rc, info, err := archiver.Open(ctx, id, op)
		if err != nil {
			return traceLogError(c, err)
		}
		c.Type("txt", "utf-8")
		return c.SendStream(rc, int(info.Size))
	}
}

// DeleteTraceLog removes the archived trace log of one operation in a correlation chain.
//
// @Summary  Delete an archived trace log
// @Tags     trace-logs
// @Param    correlation_id  path  string  true  "Correlation id"
// @Param    operation       path  string  true  "Bridge operation"  Enums(create, update)
// @Success  204
// @Failure  404  {object}  errorPayload
// @Router   /trace-logs/{correlation_id}/{operation} [delete]
func DeleteTraceLog(archiver *tracelog.Archiver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := archiver.Delete(c.UserContext(), c.Params("correlation_id"), c.Params("operation")); err != nil {
			return traceLogError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func traceLogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, tracelog.ErrArchiveDisabled):
		return writeError(c, fiber.StatusNotFound, "ARCHIVE_DISABLED", "trace log archive is disabled")
	case errors.Is(err, storage.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "trace log not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
