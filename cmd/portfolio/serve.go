package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/pipeline"
	"github.com/Zachkp/portfolio/internal/playground"
	"github.com/Zachkp/portfolio/internal/radar"
	"github.com/Zachkp/portfolio/internal/schedule"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/storage"
)

const (
	purgeInterval   = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func serveCmd(src *contentSource) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, src)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, src *contentSource) error {
	gin.SetMode(cfg.Mode)
	log, err := logging.New(cfg.LogLevel, cfg.Mode == gin.DebugMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	p, err := src.load(cfg.ContentPath)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if !cfg.SMTP.Configured() {
		log.Warn("SMTP credentials not configured, contact messages are stored only")
	}

	opts := radar.DefaultOptions()
	opts.Frame = cfg.RadarFrame
	comps := session.Components{
		Stages: p.Pipeline.Stages,
		Skills: p.Skills,
		PipelineOpts: []pipeline.Option{
			pipeline.WithPeriod(cfg.PipelinePeriod),
			pipeline.WithLogger(log.Named("pipeline")),
		},
		RendererOpts: []radar.RendererOption{
			radar.WithOptions(opts),
			radar.WithLogger(log.Named("radar")),
		},
	}
	sessions := session.NewRegistry(comps.Factory(),
		session.WithTTL(cfg.SessionTTL),
		session.WithLogger(log.Named("session")),
	)

	admin, err := server.NewAdmin(cfg.AdminUsername, cfg.AdminPassword, cfg.VisitorRetention, log.Named("admin"))
	if err != nil {
		return err
	}

	deps := &server.Deps{
		Content:  p,
		Store:    store,
		Mailer:   mailer.New(cfg.SMTP, log.Named("mailer")),
		Sessions: sessions,
		Playground: playground.New(p.APIs,
			playground.WithDelay(cfg.PlaygroundDelay),
			playground.WithStats(p.GitHub),
			playground.WithLogger(log.Named("playground")),
		),
		Admin:         admin,
		Log:           log,
		SecureCookies: cfg.SecureCookies,
	}
	engine, err := server.New(deps)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("mode", cfg.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(ctx)
	})
	g.Go(func() error {
		purgeVisitors(ctx, deps)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// purgeVisitors applies the retention window at startup and once a day
// until ctx ends.
func purgeVisitors(ctx context.Context, deps *server.Deps) {
	deps.Cleanup(ctx)
	task := schedule.Real().Every(purgeInterval, func() bool {
		deps.Cleanup(ctx)
		return true
	})
	<-ctx.Done()
	task.Cancel()
}
