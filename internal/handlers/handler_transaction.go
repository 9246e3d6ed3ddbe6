package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clubledger/clubledger/internal/apperrors"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/clubledger/clubledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler records simple income/expense entries.
type transactionHandler struct {
	transactionService portssvc.TransactionSvc
}

func newTransactionHandler(ts portssvc.TransactionSvc) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers the transaction entry route.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvc) {
	h := newTransactionHandler(transactionService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/transactions", h.createTransaction)
	}
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	memberID, ok := middleware.GetMemberIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
