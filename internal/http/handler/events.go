package handler

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"inquirysync/internal/http/middleware"
	"inquirysync/internal/model"
	"inquirysync/internal/service"
	"inquirysync/internal/tracelog"
)

// HandleEvent runs bridge for a host event notification and archives its trace log.
//
// @Summary      Handle a host record event
// @Description  Runs the create or update bridge for the posted execution context.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        operation  path      string                  true  "Bridge to run"  Enums(create, update)
// @Param        event      body      model.ExecutionContext  true  "Host execution context"
// @Success      200    {object}  service.Result
// @Failure      400    {object}  errorPayload
// @Failure      401    {object}  errorPayload
// @Failure      422    {object}  errorPayload
// @Failure      500    {object}  errorPayload
// @Router       /events/{operation} [post]
func HandleEvent(bridge service.Bridge, archiver *tracelog.Archiver, operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ec model.ExecutionContext
		if err := json.Unmarshal(c.Body(), &ec); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_EVENT", "event body is not a valid execution context")
		}
		if ec.CorrelationID == "" {
			ec.CorrelationID = requestIDFromCtx(c)
		}
		if ec.CorrelationID == "" {
			ec.CorrelationID = uuid.NewString()
		}
		c.Set(middleware.CorrelationIDHeader, ec.CorrelationID)

		ctx := c.UserContext()
		tl := archiver.Begin(ctx, ec.CorrelationID, operation)
		res, err := bridge.Handle(ctx, ec, tl)
		if err != nil {
			tl.Trace("%s failed: %v", operation, err)
		}
		// Archive failures are logged by the trace log and never change the outcome.
		_ = tl.Flush(ctx)

		if err != nil {
			return eventError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(res)
	}
}

func eventError(c *fiber.Ctx, err error) error {
	var execErr *service.ExecutionError
	switch {
	case errors.As(err, &execErr):
		return writeError(c, fiber.StatusUnprocessableEntity, "PLUGIN_EXECUTION_ERROR", execErr.Message)
	case errors.Is(err, service.ErrInvalidEvent):
		return writeError(c, fiber.StatusBadRequest, "INVALID_EVENT", "event target cannot be read")
	case errors.Is(err, sql.ErrNoRows):
		return writeError(c, fiber.StatusNotFound, "RECORD_NOT_FOUND", "record not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
