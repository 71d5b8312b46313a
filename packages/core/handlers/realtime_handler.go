package handlers

import (
	"core/realtime"
	"core/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RealtimeHandler struct {
	hub            *realtime.Hub
	sessionService *services.SessionService
}

func NewRealtimeHandler(hub *realtime.Hub, sessionService *services.SessionService) *RealtimeHandler {
	return &RealtimeHandler{
		hub:            hub,
		sessionService: sessionService,
	}
}

// Stream pushes session events over a websocket
// @Summary Subscribe to session events
// @Description Websocket stream of roster_updated, rotation_generated, game_completed and session_closed events
// @Tags realtime
// @Param id path string true "Session ID"
// @Success 101
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/ws [get]
func (h *RealtimeHandler) Stream(c *gin.Context) {
	sessionID := c.Param("id")
	if _, err := h.sessionService.GetSession(sessionID); err != nil {
		respondError(c, err, "Failed to open event stream")
		return
	}

	if err := h.hub.ServeSession(c.Writer, c.Request, sessionID); err != nil {
		log.Debug().Err(err).Str("session_id", sessionID).Msg("event stream ended")
	}
}
