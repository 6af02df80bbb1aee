package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities/internal/middleware"
	"github.com/noah-isme/gema-activities/internal/service"
)

const (
	rosterPingInterval = 30 * time.Second
	rosterWriteTimeout = 5 * time.Second
)

// RosterStreamHandler pushes roster change events to websocket clients.
type RosterStreamHandler struct {
	broadcaster service.RosterBroadcaster
	logger      zerolog.Logger
}

// NewRosterStreamHandler creates a roster stream handler.
func NewRosterStreamHandler(broadcaster service.RosterBroadcaster, logger zerolog.Logger) *RosterStreamHandler {
	return &RosterStreamHandler{
		broadcaster: broadcaster,
		logger:      logger.With().Str("component", "roster_stream_handler").Logger(),
	}
}

// Register binds the websocket upgrade under the provided router group.
func (h *RosterStreamHandler) Register(router fiber.Router) {
	router.Use("/activities", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("correlation_id", middleware.GetCorrelationID(c))
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/activities", websocket.New(h.handleConnection))
}

func (h *RosterStreamHandler) handleConnection(conn *websocket.Conn) {
	filter := strings.TrimSpace(conn.Query("activity"))
	correlation, _ := conn.Locals("correlation_id").(string)
	logger := h.logger.With().Str("correlation_id", correlation).Str("activity_filter", filter).Logger()

	events, cancel := h.broadcaster.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	logger.Info().Msg("roster stream connected")
	defer logger.Info().Msg("roster stream disconnected")

	ticker := time.NewTicker(rosterPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if filter != "" && event.Activity != filter {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(rosterWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				logger.Warn().Err(err).Msg("failed to write roster event")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(rosterWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
