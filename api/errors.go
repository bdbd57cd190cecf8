package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/motorlogic/garage/pkg/storage"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// fail maps a storage-layer error to an HTTP status and writes the error
// body. Expired sessions surface as 410 so a client can distinguish "start a
// new conversation" from a plain bad id.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	var (
		notFound  storage.SessionNotFoundError
		expired   storage.SessionExpiredError
		noProfile storage.ProfileNotFoundError
		badTier   storage.InvalidTierError
		owned     storage.OwnershipConflictError
		atCap     storage.ProfileLimitError
		badState  storage.StateError
	)

	switch {
	case errors.As(err, &notFound), errors.As(err, &noProfile):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	case errors.As(err, &expired):
		return c.Status(fiber.StatusGone).JSON(ErrorResponse{Error: err.Error()})
	case errors.As(err, &badTier), errors.As(err, &badState):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case errors.As(err, &owned), errors.As(err, &atCap):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}
