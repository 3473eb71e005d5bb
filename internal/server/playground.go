package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/playground"
)

func apiData(api playground.API) gin.H {
	return gin.H{
		"api":     api,
		"methods": playground.Methods,
	}
}

// HTMX endpoint for switching the selected API
func (d *Deps) handlePlaygroundAPI(c *gin.Context) {
	api, ok := d.Playground.API(c.Param("api"))
	if !ok {
		c.HTML(http.StatusNotFound, "playground-error.html", gin.H{
			"error": "Unknown API: " + c.Param("api"),
		})
		return
	}
	c.HTML(http.StatusOK, "playground-api.html", apiData(api))
}

func (d *Deps) handlePlaygroundSend(c *gin.Context) {
	req := playground.Request{
		API:    c.PostForm("api"),
		Method: c.DefaultPostForm("method", http.MethodGet),
		Body:   c.PostForm("body"),
	}

	curl, err := d.Playground.Curl(req)
	if err == nil {
		var resp *playground.Response
		resp, err = d.Playground.Send(c.Request.Context(), req)
		if err == nil {
			c.HTML(http.StatusOK, "playground-response.html", gin.H{
				"resp": resp,
				"curl": curl,
			})
			return
		}
	}

	status := http.StatusBadRequest
	if !errors.Is(err, playground.ErrUnknownAPI) && !errors.Is(err, playground.ErrUnsupportedMethod) {
		status = http.StatusGatewayTimeout
	}
	d.Log.Warn("playground request failed", zap.String("api", req.API), zap.Error(err))
	c.HTML(status, "playground-error.html", gin.H{"error": err.Error()})
}

func (d *Deps) handleGitHubStats(c *gin.Context) {
	stats, err := d.Playground.GitHubStats(c.Request.Context())
	if err != nil {
		d.Log.Warn("github stats failed", zap.Error(err))
		c.HTML(http.StatusGatewayTimeout, "playground-error.html", gin.H{
			"error": "Failed to load GitHub statistics",
		})
		return
	}
	c.HTML(http.StatusOK, "github-stats.html", gin.H{"stats": stats})
}
