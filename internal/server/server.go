// Package server wires the portfolio's HTTP routes.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/playground"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/storage"
	"github.com/Zachkp/portfolio/web"
)

// Notifier delivers contact form submissions to the site owner.
type Notifier interface {
	Send(ctx context.Context, c mailer.Contact) error
}

// Deps holds all handler dependencies.
type Deps struct {
	Content       *content.Portfolio
	Store         *storage.Store
	Mailer        Notifier
	Sessions      *session.Registry
	Playground    *playground.Client
	Admin         *Admin
	Log           *zap.Logger
	SecureCookies bool
	Now           func() time.Time
}

// New builds the gin engine with every route registered.
func New(d *Deps) (*gin.Engine, error) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Admin == nil {
		a, err := NewAdmin("", "", 0, d.Log)
		if err != nil {
			return nil, err
		}
		d.Admin = a
	}

	tmpl, err := web.Templates(funcs())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Requests(d.Log))
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	r.Use(d.trackVisitors())

	r.GET("/", d.handleIndex)
	r.GET("/healthz", d.handleHealth)
	r.GET("/privacy", d.handlePrivacy)

	r.GET("/pipeline", d.handlePipeline)
	r.POST("/pipeline/start", d.handlePipelineStart)
	r.POST("/pipeline/pause", d.handlePipelinePause)

	r.GET("/skills/radar", d.handleRadar)
	r.GET("/skills/radar.svg", d.handleRadarSVG)
	r.GET("/skills/breakdown", d.handleBreakdown)

	r.GET("/security/:id", d.handleSecurityFeature)

	r.GET("/playground/:api", d.handlePlaygroundAPI)
	r.POST("/playground/send", d.handlePlaygroundSend)
	r.GET("/github-stats", d.handleGitHubStats)

	r.POST("/contact", d.handleContact)

	d.setupAdminRoutes(r)
	return r, nil
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"add":   func(a, b int) int { return a + b },
		"lower": strings.ToLower,
		"pctOf": func(pct int, f float64) string { return fmt.Sprintf("%.1f", float64(pct)*f) },
	}
}
