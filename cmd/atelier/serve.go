package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/PabloGalante/atelier-agent/internal/adapters/http"
	"github.com/PabloGalante/atelier-agent/internal/config"
	"github.com/PabloGalante/atelier-agent/internal/observability"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := observability.Logger()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: "atelier",
		Environment: string(cfg.Mode),
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.Mode == config.ModeLocal,
		Stdout:      cfg.TraceStdout,
	})

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("closing backends", "error", err)
		}
	}()

	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: httpadapter.NewServer(httpadapter.ServerConfig{
			Conversation:   a.conv,
			Leads:          a.leads,
			Catalog:        a.catalog,
			Engine:         a.engine,
			AllowedOrigins: cfg.AllowedOrigins,
			ServiceName:    "atelier",
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("atelier API listening", "addr", srv.Addr, "storage", cfg.StorageBackend, "leads", cfg.LeadsBackend, "prose", cfg.ProseBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	return g.Wait()
}
