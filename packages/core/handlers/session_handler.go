package handlers

import (
	"net/http"
	"strings"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
	publicBaseURL  string
}

func NewSessionHandler(sessionService *services.SessionService, publicBaseURL string) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		publicBaseURL:  strings.TrimRight(publicBaseURL, "/"),
	}
}

func (h *SessionHandler) response(s *models.Session) models.SessionResponse {
	return models.SessionResponse{
		Session: *s,
		JoinURL: h.publicBaseURL + "/join/" + s.ShareCode,
	}
}

// CreateSession opens a new play session
// @Summary Create a session
// @Description Open a new play session with a fresh share code
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body models.CreateSessionRequest true "Session data"
// @Success 201 {object} models.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.sessionService.CreateSession(req)
	if err != nil {
		respondError(c, err, "Failed to create session")
		return
	}

	c.JSON(http.StatusCreated, h.response(session))
}

// GetSession retrieves a session with its roster
// @Summary Get a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve session")
		return
	}

	c.JSON(http.StatusOK, h.response(session))
}

// GetSessionByCode resolves a share code
// @Summary Resolve a share code
// @Description Look up a session by its six character share code (case-insensitive)
// @Tags sessions
// @Produce json
// @Param code path string true "Share code"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/code/{code} [get]
func (h *SessionHandler) GetSessionByCode(c *gin.Context) {
	session, err := h.sessionService.GetSessionByShareCode(c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to resolve share code")
		return
	}

	c.JSON(http.StatusOK, h.response(session))
}

// UpdateCourts changes how many courts the session can use
// @Summary Update court count
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param courts body models.UpdateCourtsRequest true "Court count"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/courts [patch]
func (h *SessionHandler) UpdateCourts(c *gin.Context) {
	var req models.UpdateCourtsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.sessionService.UpdateCourts(c.Param("id"), req.Courts)
	if err != nil {
		respondError(c, err, "Failed to update courts")
		return
	}

	c.JSON(http.StatusOK, h.response(session))
}

// CloseSession ends a session and cancels its running games
// @Summary Close a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/close [post]
func (h *SessionHandler) CloseSession(c *gin.Context) {
	session, err := h.sessionService.CloseSession(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to close session")
		return
	}

	c.JSON(http.StatusOK, h.response(session))
}
