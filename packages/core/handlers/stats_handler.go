package handlers

import (
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats retrieves general statistics
// @Summary Get general statistics
// @Description Get counts of sessions, players and completed games
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats()
	if err != nil {
		respondError(c, err, "Failed to retrieve statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetLeaderboard retrieves the standings of a session
// @Summary Get session leaderboard
// @Tags stats
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionStats
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/leaderboard [get]
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	stats, err := h.statsService.SessionStats(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve leaderboard")
		return
	}

	c.JSON(http.StatusOK, stats)
}
