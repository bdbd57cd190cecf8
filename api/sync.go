package api

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/motorlogic/garage/pkg/session"
	"github.com/motorlogic/garage/pkg/sse"
	gsync "github.com/motorlogic/garage/pkg/sync"
)

// ReplayRequest submits a device's offline-queued operations.
type ReplayRequest struct {
	Ops []*session.SyncOperation `json:"ops"`
}

// ReplayResponse reports which queued writes lost conflict resolution.
type ReplayResponse struct {
	Applied   int              `json:"applied"`
	Conflicts []gsync.Conflict `json:"conflicts,omitempty"`
}

// handleOpsSince returns the operations a reconnecting device missed,
// bounded below by the clock it last applied (since_wall/since_counter/
// since_device) and excluding its own writes.
func (s *Server) handleOpsSince(c *fiber.Ctx) error {
	since, err := clockFromQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ops, err := s.core.OpsSince(c.Context(), c.Params("id"), since, c.Query("device"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(map[string]any{
		"count": len(ops),
		"ops":   ops,
	})
}

// handleSyncStream subscribes the device to its owner's live operations over
// SSE. The device's own writes are suppressed.
func (s *Server) handleSyncStream(c *fiber.Ctx) error {
	device := c.Query("device")
	if device == "" {
		return badRequest(c, "device parameter required")
	}

	sub := s.core.Subscribe(c.Params("id"), device)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// io.Pipe gives direct backpressure: writes block until fasthttp has
	// flushed the previous event to the socket.
	pr, pw := io.Pipe()
	go s.streamOps(sub, pw)
	c.Context().Response.SetBodyStream(pr, -1)

	return nil
}

// streamOps forwards hub operations to the client until the client hangs up
// or the subscription is evicted for falling behind.
func (s *Server) streamOps(sub *gsync.Subscription, pw *io.PipeWriter) {
	defer pw.Close()
	defer sub.Close()

	for op := range sub.Ops() {
		data, err := json.Marshal(op)
		if err != nil {
			s.logger.Error("encoding sync op for stream", zap.Error(err))
			continue
		}
		ev := &sse.Event{Type: "op", ID: op.OpID, Data: string(data)}
		if err := sse.WriteEvent(pw, ev); err != nil {
			// Client disconnected.
			return
		}
	}
}

// handleReplay applies a device's offline queue in clock order.
func (s *Server) handleReplay(c *fiber.Ctx) error {
	var req ReplayRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	conflicts, err := s.core.ReplayQueued(c.Context(), c.Params("id"), req.Ops)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(ReplayResponse{
		Applied:   len(req.Ops) - len(conflicts),
		Conflicts: conflicts,
	})
}

// clockFromQuery parses the since_* query parameters. All absent means
// replay from the beginning.
func clockFromQuery(c *fiber.Ctx) (session.Clock, error) {
	var clock session.Clock
	if wall := c.Query("since_wall"); wall != "" {
		n, err := strconv.ParseInt(wall, 10, 64)
		if err != nil {
			return session.Clock{}, err
		}
		clock.WallMicros = n
	}
	if counter := c.Query("since_counter"); counter != "" {
		n, err := strconv.ParseUint(counter, 10, 64)
		if err != nil {
			return session.Clock{}, err
		}
		clock.Counter = n
	}
	clock.Device = c.Query("since_device")
	return clock, nil
}
