package handler

import (
	"github.com/blinkdeveloper33/blinkscore-engine/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, serviceTokenMiddleware *middleware.ServiceTokenAuthMiddleware, rateLimiter *middleware.RateLimiter, scoreHandler *ScoreHandler, dispatchHandler *DispatchHandler, wsHandler *WebSocketHandler) {
	api := e.Group("/api/v1")

	score := api.Group("/score")
	score.Use(authMiddleware.Authenticate())
	score.POST("/:userId", scoreHandler.ScoreUser)
	score.GET("/:userId", scoreHandler.GetLatestScore)
	score.PUT("/:userId/overrides", scoreHandler.SubmitOverrides)

	dispatch := api.Group("/dispatch")
	dispatch.Use(serviceTokenMiddleware.Authenticate())
	dispatch.Use(middleware.RateLimitMiddleware(rateLimiter))
	dispatch.POST("/run", dispatchHandler.RunSweep)

	api.GET("/openapi.json", ServeOpenAPI3Spec)

	e.GET("/ws", wsHandler.HandleWS)
}
