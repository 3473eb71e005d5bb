package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/radar"
	"github.com/Zachkp/portfolio/internal/session"
)

func (d *Deps) handleRadar(c *gin.Context) {
	v, err := d.view(c)
	if err != nil {
		d.sessionError(c, err)
		return
	}
	svg := v.Chart()
	c.HTML(http.StatusOK, "radar.html", gin.H{
		// SVG markup is generated by the renderer with escaped labels.
		"svg":        template.HTML(svg.String()),
		"done":       v.Radar.Done(),
		"frameMs":    v.Radar.Options().Frame.Milliseconds() * 2,
		"categories": radar.CategoryAverages(d.Content.Skills),
		"topSkills":  radar.TopN(d.Content.Skills, 5),
		"progress":   v.Radar.Progress(),
	})
}

// handleRadarSVG serves the visitor's current frame. Requests without a live
// session get the finished chart and do not open one.
func (d *Deps) handleRadarSVG(c *gin.Context) {
	id, _ := c.Cookie(sessionCookie)
	var svg *radar.SVG
	if v, ok := d.Sessions.Get(id); ok {
		svg = v.Chart()
	} else {
		svg = radar.NewSVG(session.ChartWidth, session.ChartHeight)
		radar.Draw(svg, d.Content.Skills, 1, radar.DefaultOptions())
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg.String()))
}

func (d *Deps) handleBreakdown(c *gin.Context) {
	v, err := d.view(c)
	if err != nil {
		d.sessionError(c, err)
		return
	}
	c.HTML(http.StatusOK, "breakdown.html", gin.H{
		"categories": radar.CategoryAverages(d.Content.Skills),
		"topSkills":  radar.TopN(d.Content.Skills, 5),
		"progress":   v.Radar.Progress(),
		"done":       v.Radar.Done(),
	})
}
