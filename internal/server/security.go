package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTMX endpoint for the security lab's before/after panel
func (d *Deps) handleSecurityFeature(c *gin.Context) {
	f, ok := d.Content.Security.Feature(c.Param("id"))
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Unknown security feature: " + c.Param("id")})
		return
	}
	c.HTML(http.StatusOK, "security-feature.html", f)
}
