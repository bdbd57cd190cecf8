package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/motorlogic/garage/pkg/session"
)

// AddProfileRequest saves a vehicle profile for an owner.
type AddProfileRequest struct {
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload"`
	Device  string          `json:"device"`
}

// handleAddProfile saves a profile under the owner's cap.
func (s *Server) handleAddProfile(c *fiber.Ctx) error {
	var req AddProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Payload) == 0 {
		return badRequest(c, "payload required")
	}

	profile, err := s.core.AddProfile(c.Context(), &session.Profile{
		ID:      req.ID,
		OwnerID: c.Params("id"),
		Payload: req.Payload,
	}, req.Device)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// handleListProfiles returns the owner's profiles, most recently used first.
func (s *Server) handleListProfiles(c *fiber.Ctx) error {
	profiles, err := s.core.ListProfiles(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(map[string]any{
		"count":    len(profiles),
		"profiles": profiles,
	})
}

// handleDeleteProfile removes one saved profile.
func (s *Server) handleDeleteProfile(c *fiber.Ctx) error {
	err := s.core.DeleteProfile(c.Context(), c.Params("profileID"), c.Params("id"), c.Query("device"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
