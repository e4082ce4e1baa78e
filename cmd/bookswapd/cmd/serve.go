package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/api/handlers"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/api/middleware"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/config"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/identity"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/store"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/telemetry"
	"github.com/NikhilTirunagiri/GMUBookSwap/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()

	var shutdownTelemetry func(context.Context) error
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err = telemetry.Setup(ctx, cfg.Telemetry, Version)
		if err != nil {
			return fmt.Errorf("setting up telemetry: %w", err)
		}
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	gateway := identity.NewGoTrueClient(
		cfg.Identity.BaseURL,
		cfg.Identity.APIKey,
		identity.WithHTTPClient(&http.Client{Timeout: cfg.Identity.Timeout}),
		identity.WithRateLimiter(rate.NewLimiter(
			rate.Limit(cfg.Identity.RateLimit.PerSecond),
			cfg.Identity.RateLimit.Burst,
		)),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// The marketplace pages run on other origins and send credentialed
	// requests, so CORS sits outermost.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Recovery(log))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Welcome to GMU-BookSwap API",
		})
	})

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("GMU Bookswap API", "1.0.0"))
	handlers.RegisterBookRoutes(api, handlers.NewBooksHandler(st, gateway))
	handlers.RegisterAuthRoutes(api, handlers.NewAuthHandler(gateway))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	if shutdownTelemetry != nil {
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", "error", err)
		}
	}

	log.Info("server stopped")
	return nil
}
