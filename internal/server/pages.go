package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/playground"
	"github.com/Zachkp/portfolio/internal/radar"
)

// Home page route
func (d *Deps) handleIndex(c *gin.Context) {
	v, err := d.view(c)
	if err != nil {
		d.Log.Error("opening session", zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	p := d.Content
	featured, other := p.FeaturedProjects()
	apis := d.Playground.APIs()
	var first playground.API
	if len(apis) > 0 {
		first = apis[0]
	}
	var security any
	if len(p.Security.Features) > 0 {
		security = p.Security.Features[0]
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"p":          p,
		"featured":   featured,
		"other":      other,
		"categories": radar.CategoryAverages(p.Skills),
		"topSkills":  radar.TopN(p.Skills, 5),
		"progress":   v.Radar.Progress(),
		"pipeline":   pipelineData(v),
		"apis":       apis,
		"api":        apiData(first),
		"security":   security,
		"year":       d.Now().Year(),
	})
}

func (d *Deps) handleHealth(c *gin.Context) {
	if err := d.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": d.Sessions.Len()})
}

// Privacy policy route
func (d *Deps) handlePrivacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title": "Privacy Policy",
		"name":  d.Content.Profile.Name,
	})
}
