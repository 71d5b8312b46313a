package handlers

import (
	"net/http"
	"net/url"

	"core/utils"

	"github.com/gin-gonic/gin"
)

const joinPage = "/join.html"

// JoinRedirect sends share links to the join page with the code filled in
// @Summary Follow a share link
// @Description Redirects /join/{code} to the join page. Codes are six letters or digits, matched case-insensitively.
// @Tags sessions
// @Param code path string true "Share code"
// @Success 302
// @Failure 404 {object} map[string]string
// @Router /join/{code} [get]
func JoinRedirect(c *gin.Context) {
	code, ok := utils.NormalizeShareCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown share link"})
		return
	}

	c.Redirect(http.StatusFound, joinPage+"?code="+url.QueryEscape(code))
}
