package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/config"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/cron"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/engine"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/handler"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/middleware"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/repository/postgres"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/repository/storage"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/service"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	archive, err := storage.NewS3StatementArchive(context.Background(), cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize statement archive")
	}

	// Repositories
	ledgerRepo := postgres.NewLedgerRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	serviceTokenRepo := postgres.NewServiceTokenRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)

	// Services
	serviceTokenService := service.NewServiceTokenService(serviceTokenRepo)

	// Engine and real-time push
	eng := engine.New()
	hub := websocket.NewHub()

	// Auth
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, workspaceRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}
	serviceTokenMiddleware := middleware.NewServiceTokenAuthMiddleware(serviceTokenService)
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	wsJWTValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, workspaceRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket JWT validator")
	}

	// Cron dispatcher: rescores stale users on a periodic sweep
	dispatcher := cron.New(ledgerRepo, auditRepo, archive, hub, eng, cfg.Rescoring.Interval, cfg.Rescoring.BatchSize, cfg.Rescoring.RateLimitPerSecond)

	// Handlers
	scoreHandler := handler.NewScoreHandler(ledgerRepo, auditRepo, archive, hub, eng)
	dispatchHandler := handler.NewDispatchHandler(dispatcher)
	wsHandler := handler.NewWebSocketHandler(hub, wsJWTValidator, cfg.CORSOrigins)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	handler.RegisterRoutes(e, authMiddleware, serviceTokenMiddleware, rateLimiter, scoreHandler, dispatchHandler, wsHandler)

	// Periodic rescoring sweep
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	go runSweepLoop(sweepCtx, dispatcher, cfg.Rescoring.Interval)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancelSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// runSweepLoop periodically triggers the rescoring sweep; the dispatcher's
// own ListStale query is what actually decides who needs rescoring, so a
// tick interval shorter than the rescoring interval just finds nothing due.
func runSweepLoop(ctx context.Context, d *cron.Dispatcher, interval time.Duration) {
	tickEvery := interval / 4
	if tickEvery < time.Minute {
		tickEvery = time.Minute
	}
	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rescored, err := d.Run(ctx)
			if err != nil {
				log.Warn().Err(err).Int("rescored", rescored).Msg("rescoring sweep completed with errors")
				continue
			}
			log.Info().Int("rescored", rescored).Msg("rescoring sweep completed")
		}
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog.
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
