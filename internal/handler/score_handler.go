package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/blinkdeveloper33/blinkscore-engine/internal/domain"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/engine"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/middleware"
	"github.com/blinkdeveloper33/blinkscore-engine/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ledgerHistoryLookback bounds how far back the handler asks the ledger
// provider to look; it comfortably covers the 365-day history length that
// earns the top history_days points (the widest metric window is W180).
const ledgerHistoryLookback = 400 * 24 * time.Hour

// ScoreHandler handles scoring-related HTTP requests.
type ScoreHandler struct {
	ledger    domain.LedgerProvider
	audit     domain.AuditRepository
	archive   domain.StatementArchiver
	publisher websocket.EventPublisher
	engine    *engine.Engine
}

// NewScoreHandler creates a new ScoreHandler. archive and publisher may be
// nil, in which case archival and dashboard push are skipped.
func NewScoreHandler(ledger domain.LedgerProvider, audit domain.AuditRepository, archive domain.StatementArchiver, publisher websocket.EventPublisher, eng *engine.Engine) *ScoreHandler {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &ScoreHandler{
		ledger:    ledger,
		audit:     audit,
		archive:   archive,
		publisher: publisher,
		engine:    eng,
	}
}

// ScoreResponse mirrors domain.ScoreResult for API responses.
type ScoreResponse struct {
	Metrics            domain.MetricVector        `json:"metrics"`
	Points             domain.PointBreakdown      `json:"points"`
	BaseScore          int                        `json:"baseScore"`
	BlinkScore         float64                    `json:"blinkScore"`
	Recommendation     domain.Recommendation      `json:"recommendation"`
	Flags              domain.Flags               `json:"flags"`
	TaggedTransactions []domain.TaggedTransaction `json:"taggedTransactions"`
}

func scoreResponseFromResult(r domain.ScoreResult) ScoreResponse {
	return ScoreResponse{
		Metrics:            r.Metrics,
		Points:             r.Points,
		BaseScore:          r.BaseScore,
		BlinkScore:         r.BlinkScore,
		Recommendation:     r.Recommendation,
		Flags:              r.Flags,
		TaggedTransactions: r.TaggedTransactions,
	}
}

// ScoreUser godoc
// @Summary Score a user
// @Description Pulls the user's ledger and runs the Blink Score engine against it
// @Tags score
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} ScoreResponse
// @Failure 422 {object} ProblemDetails
// @Router /score/{userId} [post]
func (h *ScoreHandler) ScoreUser(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	userID := c.Param("userId")
	if userID == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "userId", Message: "User ID is required"},
		})
	}

	result, err := h.scoreAndPersist(c, workspaceID, userID)
	if err != nil {
		if insufficient, ok := err.(*domain.InsufficientHistoryError); ok {
			return c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
				Type:     "https://blinkscore.app/errors/insufficient-history",
				Title:    "Insufficient History",
				Status:   http.StatusUnprocessableEntity,
				Detail:   insufficient.Error(),
				Instance: c.Request().URL.Path,
			})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("scoring failed")
		return NewInternalError(c, "Scoring failed")
	}

	return c.JSON(http.StatusOK, scoreResponseFromResult(result))
}

// GetLatestScore godoc
// @Summary Get a user's latest audit row
// @Tags score
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} ScoreResponse
// @Failure 404 {object} ProblemDetails
// @Router /score/{userId} [get]
func (h *ScoreHandler) GetLatestScore(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	userID := c.Param("userId")
	row, err := h.audit.GetLatest(c.Request().Context(), workspaceID, userID)
	if err != nil {
		if err == domain.ErrAuditNotFound {
			return NewNotFoundError(c, "No score on file for this user")
		}
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load latest audit row")
		return NewInternalError(c, "Failed to load latest score")
	}

	if row.Result == nil {
		return c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
			Type:     "https://blinkscore.app/errors/insufficient-history",
			Title:    "Insufficient History",
			Status:   http.StatusUnprocessableEntity,
			Detail:   row.FailureReason,
			Instance: c.Request().URL.Path,
		})
	}

	return c.JSON(http.StatusOK, scoreResponseFromResult(*row.Result))
}

// SubmitOverridesRequest is the body of a tagging-override submission.
type SubmitOverridesRequest struct {
	Overrides domain.Overrides `json:"overrides"`
}

// SubmitOverrides godoc
// @Summary Submit tagging overrides and re-score
// @Description Persists caller-supplied corrections to the automatic tagger's classification, then immediately re-scores the user against them
// @Tags score
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body SubmitOverridesRequest true "Overrides"
// @Success 200 {object} ScoreResponse
// @Failure 400 {object} ProblemDetails
// @Router /score/{userId}/overrides [put]
func (h *ScoreHandler) SubmitOverrides(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	userID := c.Param("userId")
	if userID == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "userId", Message: "User ID is required"},
		})
	}

	var req SubmitOverridesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.ledger.SaveOverrides(c.Request().Context(), workspaceID, userID, req.Overrides); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to save overrides")
		return NewInternalError(c, "Failed to save overrides")
	}

	result, err := h.scoreAndPersist(c, workspaceID, userID)
	if err != nil {
		if insufficient, ok := err.(*domain.InsufficientHistoryError); ok {
			return c.JSON(http.StatusUnprocessableEntity, ProblemDetails{
				Type:     "https://blinkscore.app/errors/insufficient-history",
				Title:    "Insufficient History",
				Status:   http.StatusUnprocessableEntity,
				Detail:   insufficient.Error(),
				Instance: c.Request().URL.Path,
			})
		}
		log.Error().Err(err).Str("user_id", userID).Msg("re-scoring after override failed")
		return NewInternalError(c, "Re-scoring failed")
	}

	h.publisher.Publish(workspaceID, websocket.ScoreOverridden(map[string]interface{}{
		"userId":         userID,
		"blinkScore":     result.BlinkScore,
		"recommendation": result.Recommendation,
	}))

	return c.JSON(http.StatusOK, scoreResponseFromResult(result))
}

// scoreAndPersist pulls the ledger, runs the engine, and persists the
// resulting (or partial, on InsufficientHistory) audit row.
func (h *ScoreHandler) scoreAndPersist(c echo.Context, workspaceID int32, userID string) (domain.ScoreResult, error) {
	ctx := c.Request().Context()
	since := time.Now().Add(-ledgerHistoryLookback)

	txs, err := h.ledger.GetTransactions(ctx, workspaceID, userID, since)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	balances, err := h.ledger.GetDailyBalances(ctx, workspaceID, userID, since, time.Now())
	if err != nil {
		return domain.ScoreResult{}, err
	}
	overrides, err := h.ledger.GetOverrides(ctx, workspaceID, userID)
	if err != nil {
		return domain.ScoreResult{}, err
	}

	reportCtx := domain.ReportContext{ReferenceDate: time.Now(), CurrentBalance: domain.LatestBalance(balances)}
	result, scoreErr := h.engine.Score(txs, balances, reportCtx, overrides)

	row := &domain.AuditRow{
		WorkspaceID: workspaceID,
		UserID:      userID,
		ScoredAt:    time.Now(),
	}

	if scoreErr != nil {
		insufficient, ok := scoreErr.(*domain.InsufficientHistoryError)
		if !ok {
			return domain.ScoreResult{}, scoreErr
		}
		row.FailureReason = insufficient.Error()
		row.ObservedDays = insufficient.HistoryDays
		if err := h.audit.Save(ctx, row); err != nil {
			return domain.ScoreResult{}, err
		}
		h.publisher.Publish(workspaceID, websocket.ScoreFailed(map[string]interface{}{
			"userId": userID,
			"reason": row.FailureReason,
		}))
		return domain.ScoreResult{}, scoreErr
	}

	row.Result = &result
	row.ObservedDays = int(result.Metrics.HistoryDays.Value)
	if err := h.audit.Save(ctx, row); err != nil {
		return domain.ScoreResult{}, err
	}

	if h.archive != nil {
		payload, marshalErr := marshalArchivePayload(txs, balances, overrides, reportCtx)
		if marshalErr == nil {
			if _, err := h.archive.Archive(ctx, workspaceID, userID, row.ScoredAt, payload); err != nil {
				log.Warn().Err(err).Str("user_id", userID).Msg("failed to archive scoring payload")
			}
		}
	}

	h.publisher.Publish(workspaceID, websocket.ScoreCompleted(map[string]interface{}{
		"userId":         userID,
		"blinkScore":     result.BlinkScore,
		"recommendation": result.Recommendation,
	}))

	return result, nil
}

// archivePayload is the exact input the engine scored against, persisted
// to the statement archive for audit replay and dispute resolution.
type archivePayload struct {
	Transactions []domain.Transaction  `json:"transactions"`
	Balances     []domain.DailyBalance `json:"dailyBalances"`
	Overrides    domain.Overrides      `json:"overrides"`
	Context      domain.ReportContext  `json:"context"`
}

func marshalArchivePayload(txs []domain.Transaction, balances []domain.DailyBalance, overrides domain.Overrides, ctx domain.ReportContext) ([]byte, error) {
	return json.Marshal(archivePayload{
		Transactions: txs,
		Balances:     balances,
		Overrides:    overrides,
		Context:      ctx,
	})
}
