package handlers

import (
	"net/http"
	"strconv"

	"core/services"

	"github.com/gin-gonic/gin"
)

type RotationHandler struct {
	rotationService *services.RotationService
}

func NewRotationHandler(rotationService *services.RotationService) *RotationHandler {
	return &RotationHandler{
		rotationService: rotationService,
	}
}

// GenerateRotation picks the next games for a session
// @Summary Generate a rotation
// @Description Pair the players with the fewest games onto the free courts. With start=true the pairings become in-progress games.
// @Tags rotations
// @Produce json
// @Param id path string true "Session ID"
// @Param start query bool false "Start the paired games" default(false)
// @Success 201 {object} models.RotationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions/{id}/rotations [post]
func (h *RotationHandler) GenerateRotation(c *gin.Context) {
	start, err := strconv.ParseBool(c.DefaultQuery("start", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start parameter"})
		return
	}

	resp, err := h.rotationService.Generate(c.Param("id"), services.RotationOptions{Start: start})
	if err != nil {
		respondError(c, err, "Failed to generate rotation")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// PreviewRotation shows what the next rotation would be
// @Summary Preview a rotation
// @Description Dry run of the next rotation; nothing is saved
// @Tags rotations
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.RotationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/rotations/preview [get]
func (h *RotationHandler) PreviewRotation(c *gin.Context) {
	resp, err := h.rotationService.Preview(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to preview rotation")
		return
	}

	c.JSON(http.StatusOK, resp)
}
