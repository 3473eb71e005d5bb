package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/pipeline"
	"github.com/Zachkp/portfolio/internal/session"
)

func pipelineData(v *session.View) gin.H {
	snap := v.Pipeline.Snapshot()
	cur, _ := snap.Current()
	return gin.H{
		"snap":    snap,
		"current": cur,
		"running": snap.Status == pipeline.StatusRunning,
		"done":    snap.Status == pipeline.StatusCompleted,
		"pollMs":  v.Pipeline.Period().Milliseconds() / 2,
	}
}

func (d *Deps) renderPipeline(c *gin.Context, v *session.View) {
	c.HTML(http.StatusOK, "pipeline.html", pipelineData(v))
}

func (d *Deps) handlePipeline(c *gin.Context) {
	v, err := d.view(c)
	if err != nil {
		d.sessionError(c, err)
		return
	}
	d.renderPipeline(c, v)
}

func (d *Deps) handlePipelineStart(c *gin.Context) {
	v, err := d.view(c)
	if err != nil {
		d.sessionError(c, err)
		return
	}
	if v.Pipeline.Start() {
		d.Log.Debug("pipeline run started", zap.String("session", v.ID))
	}
	d.renderPipeline(c, v)
}

func (d *Deps) handlePipelinePause(c *gin.Context) {
	v, err := d.view(c)
	if err != nil {
		d.sessionError(c, err)
		return
	}
	v.Pipeline.Pause()
	d.renderPipeline(c, v)
}

func (d *Deps) sessionError(c *gin.Context, err error) {
	d.Log.Error("opening session", zap.Error(err))
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"error": "Sorry, the demo is unavailable right now. Please try again later.",
	})
}
