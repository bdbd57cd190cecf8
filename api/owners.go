package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SetRetentionRequest carries an account's retention preference in days.
// Zero clears the preference, so sessions are retained indefinitely.
type SetRetentionRequest struct {
	Days int `json:"days"`
}

// handleSetRetention stores the account's retention preference; the next
// lifecycle sweep purges persistent sessions inactive longer than that.
func (s *Server) handleSetRetention(c *fiber.Ctx) error {
	var req SetRetentionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Days < 0 {
		return badRequest(c, "days must not be negative")
	}

	if err := s.core.SetOwnerRetention(c.Params("id"), req.Days); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleExport serializes everything the owner holds: sessions with full
// transcripts, profiles, and the clock the export was taken at.
func (s *Server) handleExport(c *fiber.Ctx) error {
	snap, err := s.core.ExportOwnerData(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(snap)
}

// handleErase irreversibly deletes the owner's sessions, profiles, and
// queued sync operations.
func (s *Server) handleErase(c *fiber.Ctx) error {
	ownerID := c.Params("id")
	if err := s.core.EraseOwnerData(c.Context(), ownerID); err != nil {
		return s.fail(c, err)
	}

	s.logger.Info("erased owner data", zap.String("owner_id", ownerID))
	return c.SendStatus(fiber.StatusNoContent)
}
