package server

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/storage"
)

var untracked = []string{"/static/", "/admin", "/favicon", "/privacy", "/healthz", "/skills/radar.svg"}

// Privacy-conscious visitor tracking middleware. Only full page loads are
// recorded; HTMX partial requests are not.
func (d *Deps) trackVisitors() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || c.GetHeader("HX-Request") == "true" || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, p := range untracked {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		err := d.Store.RecordVisit(c.Request.Context(), storage.Visitor{
			HashedIP:  d.Admin.HashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: d.Now(),
		})
		if err != nil {
			d.Log.Error("recording visitor", zap.Error(err))
		}
		c.Next()
	}
}

// Cleanup removes visitor rows older than the admin retention window.
func (d *Deps) Cleanup(ctx context.Context) (int64, error) {
	if d.Admin.retention <= 0 {
		return 0, nil
	}
	n, err := d.Store.PurgeVisitorsBefore(ctx, d.Now().Add(-d.Admin.retention))
	if err != nil {
		d.Log.Error("cleaning up visitor data", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		d.Log.Info("privacy cleanup", zap.Int64("removed", n), zap.Duration("retention", d.Admin.retention))
	}
	return n, nil
}
