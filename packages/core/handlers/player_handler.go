package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	rosterService *services.RosterService
}

func NewPlayerHandler(rosterService *services.RosterService) *PlayerHandler {
	return &PlayerHandler{
		rosterService: rosterService,
	}
}

// ListPlayers retrieves the roster of a session
// @Summary List session players
// @Description Players in join order, including resting and departed ones
// @Tags players
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} models.Player
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/players [get]
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.rosterService.ListPlayers(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve players")
		return
	}

	c.JSON(http.StatusOK, players)
}

// JoinSession adds a player through a share code
// @Summary Join a session
// @Description Join with a display name that is unique within the session (case-insensitive)
// @Tags players
// @Accept json
// @Produce json
// @Param code path string true "Share code"
// @Param player body models.JoinSessionRequest true "Player data"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/join/{code} [post]
func (h *PlayerHandler) JoinSession(c *gin.Context) {
	var req models.JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	player, err := h.rosterService.JoinSession(c.Param("code"), req)
	if err != nil {
		respondError(c, err, "Failed to join session")
		return
	}

	c.JSON(http.StatusCreated, player)
}

// UpdatePlayerStatus moves a player between ACTIVE, RESTING and LEFT
// @Summary Update player status
// @Tags players
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param playerId path string true "Player ID"
// @Param status body models.UpdatePlayerStatusRequest true "Target status"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/players/{playerId}/status [patch]
func (h *PlayerHandler) UpdatePlayerStatus(c *gin.Context) {
	var req models.UpdatePlayerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	player, _, err := h.rosterService.ChangeStatus(c.Param("id"), c.Param("playerId"), req)
	if err != nil {
		respondError(c, err, "Failed to update player status")
		return
	}

	c.JSON(http.StatusOK, player)
}
