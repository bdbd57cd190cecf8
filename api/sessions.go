package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/motorlogic/garage/pkg/session"
)

// CreateSessionRequest starts a session. An empty owner_id starts an
// anonymous ephemeral session under a generated guest owner.
type CreateSessionRequest struct {
	OwnerID string       `json:"owner_id,omitempty"`
	Tier    session.Tier `json:"tier,omitempty"`
	Device  string       `json:"device"`
}

// CommitTurnRequest records one completed exchange.
type CommitTurnRequest struct {
	UserMessage      session.Message            `json:"user_message"`
	AssistantMessage session.Message            `json:"assistant_message"`
	StateUpdates     map[string]json.RawMessage `json:"state_updates,omitempty"`
	Device           string                     `json:"device"`
}

// SetStateRequest writes one state slot.
type SetStateRequest struct {
	Value  json.RawMessage `json:"value"`
	Device string          `json:"device"`
}

// SetTitleRequest renames a session.
type SetTitleRequest struct {
	Title  string `json:"title"`
	Device string `json:"device"`
}

// ClaimRequest migrates an ephemeral session to an authenticated owner.
type ClaimRequest struct {
	NewOwnerID string `json:"new_owner_id"`
	Device     string `json:"device"`
}

// handleCreateSession starts a new session in the tier the owner implies.
func (s *Server) handleCreateSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.OwnerID == "" {
		req.OwnerID = session.NewGuestOwnerID()
	}
	if req.Tier == "" {
		req.Tier = session.TierForOwner(req.OwnerID)
	}

	sess, err := s.core.StartSession(c.Context(), req.OwnerID, req.Tier, req.Device)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

// handleGetSession returns one session with its messages.
func (s *Server) handleGetSession(c *fiber.Ctx) error {
	sess, err := s.core.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(sess)
}

// handleListSessions returns the owner's sessions, newest activity first.
func (s *Server) handleListSessions(c *fiber.Ctx) error {
	sessions, err := s.core.ListSessions(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(map[string]any{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

// handleEndSession deletes a session immediately. Deleting an unknown
// session succeeds; the TTL sweep may have beaten the client to it.
func (s *Server) handleEndSession(c *fiber.Ctx) error {
	if err := s.core.EndSession(c.Context(), c.Params("id"), c.Query("device")); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleCommitTurn stores a user/assistant exchange plus any state the
// engine asked to persist.
func (s *Server) handleCommitTurn(c *fiber.Ctx) error {
	var req CommitTurnRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserMessage.Content == "" && req.AssistantMessage.Content == "" {
		return badRequest(c, "turn requires at least one message")
	}

	result, err := s.core.CommitTurn(c.Context(), c.Params("id"), req.UserMessage, req.AssistantMessage, req.StateUpdates, req.Device)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// handleGetContext assembles the bounded context for the conversational engine.
func (s *Server) handleGetContext(c *fiber.Ctx) error {
	mctx, err := s.core.AssembleContext(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(mctx)
}

// handleGetState reads one state slot.
func (s *Server) handleGetState(c *fiber.Ctx) error {
	value, err := s.core.GetState(c.Context(), c.Params("id"), c.Params("key"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(map[string]any{
		"key":   c.Params("key"),
		"value": value,
	})
}

// handleSetState writes one state slot.
func (s *Server) handleSetState(c *fiber.Ctx) error {
	var req SetStateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := s.core.SetState(c.Context(), c.Params("id"), c.Params("key"), req.Value, req.Device); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleSetTitle renames a session.
func (s *Server) handleSetTitle(c *fiber.Ctx) error {
	var req SetTitleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := s.core.SetTitle(c.Context(), c.Params("id"), req.Title, req.Device); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleClaimSession migrates an ephemeral session to the authenticated owner.
func (s *Server) handleClaimSession(c *fiber.Ctx) error {
	var req ClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.NewOwnerID == "" {
		return badRequest(c, "new_owner_id required")
	}

	sess, err := s.core.ClaimSession(c.Context(), c.Params("id"), req.NewOwnerID, req.Device)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(sess)
}
