package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clubledger/clubledger/internal/apperrors"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/clubledger/clubledger/internal/middleware"
	"github.com/clubledger/clubledger/pkg/config"
	"github.com/gin-gonic/gin"
)

// adjustmentHandler posts manual balance adjustments and serves journals.
type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvc
}

func newAdjustmentHandler(as portssvc.AdjustmentSvc) *adjustmentHandler {
	return &adjustmentHandler{adjustmentService: as}
}

// registerAdjustmentRoutes registers the adjustment posting route. Posting is
// rate limited per client IP like the auth routes, since a scripted caller
// with a leaked token could otherwise flood the books.
func registerAdjustmentRoutes(rg *gin.RouterGroup, cfg *config.Config, adjustmentService portssvc.AdjustmentSvc) {
	h := newAdjustmentHandler(adjustmentService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/adjustments", rateLimitByIP(cfg.AuthRateLimit), h.postAdjustment)
	}
}

// registerJournalReadRoutes registers the journal retrieval route.
func registerJournalReadRoutes(rg *gin.RouterGroup, adjustmentService portssvc.AdjustmentSvc) {
	h := newAdjustmentHandler(adjustmentService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/journals/:id", h.getJournal)
	}
}

func (h *adjustmentHandler) postAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	memberID, ok := middleware.GetMemberIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	journal, err := h.adjustmentService.PostAdjustment(c.Request.Context(), req, memberID, c.ClientIP())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			// Persistence details stay out of the response body.
			logger.Error("Failed to post adjustment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Unable to post adjustment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(journal))
}

func (h *adjustmentHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	journal, lines, err := h.adjustmentService.GetJournal(c.Request.Context(), journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal not found"})
		} else {
			logger.Error("Failed to get journal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve journal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal, lines))
}
