package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// ListGames retrieves the games of a session
// @Summary List session games
// @Tags games
// @Produce json
// @Param id path string true "Session ID"
// @Param status query string false "Filter by game status" Enums(in_progress,completed,cancelled)
// @Success 200 {array} models.Game
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", models.GameStatusInProgress, models.GameStatusCompleted, models.GameStatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: in_progress, completed, cancelled"})
		return
	}

	games, err := h.gameService.ListGames(c.Param("id"), status)
	if err != nil {
		respondError(c, err, "Failed to retrieve games")
		return
	}

	c.JSON(http.StatusOK, games)
}

// CompleteGame records the winning side
// @Summary Complete a game
// @Description Record the winner; each player's games, wins and losses are updated once
// @Tags games
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param gameId path string true "Game ID"
// @Param result body models.CompleteGameRequest true "Winning side"
// @Success 200 {object} models.Game
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/games/{gameId}/complete [post]
func (h *GameHandler) CompleteGame(c *gin.Context) {
	var req models.CompleteGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	game, err := h.gameService.CompleteGame(c.Param("id"), c.Param("gameId"), req.WinnerSide)
	if err != nil {
		respondError(c, err, "Failed to complete game")
		return
	}

	c.JSON(http.StatusOK, game)
}

// CancelGame abandons a game without recording a result
// @Summary Cancel a game
// @Tags games
// @Produce json
// @Param id path string true "Session ID"
// @Param gameId path string true "Game ID"
// @Success 200 {object} models.Game
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/games/{gameId}/cancel [post]
func (h *GameHandler) CancelGame(c *gin.Context) {
	game, err := h.gameService.CancelGame(c.Param("id"), c.Param("gameId"))
	if err != nil {
		respondError(c, err, "Failed to cancel game")
		return
	}

	c.JSON(http.StatusOK, game)
}
