package handler

import (
	"net/http"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/cron"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DispatchHandler exposes a manual trigger for the rescoring sweep, for use
// by an external scheduler or an operator, authenticated via service token
// rather than an end-user Auth0 session.
type DispatchHandler struct {
	dispatcher *cron.Dispatcher
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(dispatcher *cron.Dispatcher) *DispatchHandler {
	return &DispatchHandler{dispatcher: dispatcher}
}

// DispatchRunResponse reports the outcome of a manually triggered sweep.
type DispatchRunResponse struct {
	Rescored int    `json:"rescored"`
	Error    string `json:"error,omitempty"`
}

// RunSweep godoc
// @Summary Trigger a rescoring sweep
// @Tags dispatch
// @Produce json
// @Security ServiceTokenAuth
// @Success 200 {object} DispatchRunResponse
// @Router /dispatch/run [post]
func (h *DispatchHandler) RunSweep(c echo.Context) error {
	rescored, err := h.dispatcher.Run(c.Request().Context())
	resp := DispatchRunResponse{Rescored: rescored}
	if err != nil {
		log.Warn().Err(err).Msg("rescoring sweep completed with errors")
		resp.Error = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}
