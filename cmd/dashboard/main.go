package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"chat-dashboard/cmd/dashboard/clients/sessionclient"
	"chat-dashboard/cmd/dashboard/httpclient"
	"chat-dashboard/cmd/dashboard/router"
	"chat-dashboard/cmd/dashboard/view"
	"chat-dashboard/cmd/dashboard/workspace"
	"chat-dashboard/cmd/internal/logger"
	"chat-dashboard/config"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse chat sessions paged from the chat-session API",
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}

// @title           Chat Dashboard API
// @version         1.0
// @description     Browse chat sessions paged from the chat-session API
// @BasePath        /api/v1
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.InitApp(configPath); err != nil {
				return err
			}
			cfg := config.GetConfig()
			if addr != "" {
				cfg.Server.ListenAddr = addr
			}
			logger.Init(cfg.Logging.Level)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config.yaml (default: searched upward from cwd)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.listen_addr")
	return cmd
}

func serve(ctx context.Context, cfg config.AppConfig) error {
	chat := sessionclient.New(cfg.Backend.BaseURL, cfg.Backend.SessionsPath, httpclient.Config{
		Timeout: cfg.Backend.RequestTimeout,
	})
	loc := cfg.Location()

	registry := workspace.New(func() *view.View {
		return view.New(view.Options{
			Fetcher:           chat,
			PageSize:          cfg.Dashboard.PageSize,
			NotificationDelay: cfg.Dashboard.NotificationDelay,
			Location:          loc,
		})
	}, cfg.Server.ClientIdleTTL)

	r := router.New(router.Deps{Views: registry, Health: chat})
	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           router.WithCORS(r, cfg.Server.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoWithFields("dashboard gateway listening", logger.Fields{
			"addr":    cfg.Server.ListenAddr,
			"backend": cfg.Backend.BaseURL,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return registry.Run(gctx, sweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Log.Info("shutting down dashboard gateway")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
