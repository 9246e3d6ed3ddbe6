package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/clubledger/clubledger/internal/apperrors"
	"github.com/clubledger/clubledger/internal/core/domain"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/clubledger/clubledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// csvHeader is the fixed column layout of the register export.
var csvHeader = []string{"Date", "Reference", "Source", "Account", "Category", "Description", "Debit", "Credit", "Balance"}

// registerHandler serves the combined transaction register.
type registerHandler struct {
	registerService portssvc.RegisterSvc
}

func newRegisterHandler(rs portssvc.RegisterSvc) *registerHandler {
	return &registerHandler{registerService: rs}
}

// registerRegisterRoutes registers the register view and export route.
func registerRegisterRoutes(rg *gin.RouterGroup, registerService portssvc.RegisterSvc) {
	h := newRegisterHandler(registerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/register", h.getRegister)
	}
}

// getRegister builds the filtered register. With ?export=1 the same rows are
// streamed as a CSV attachment instead of JSON.
func (h *registerHandler) getRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.RegisterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.registerService.BuildRegister(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to build register", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build register"})
		}
		return
	}

	if params.Export {
		h.writeCSV(c, result)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegisterResponse(result))
}

// writeCSV streams the register rows as a CSV attachment. One output row per
// register row, in the same order as the JSON rendering.
func (h *registerHandler) writeCSV(c *gin.Context, result *domain.RegisterResult) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filename := fmt.Sprintf("register-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(csvHeader); err != nil {
		logger.Error("Failed to write CSV header", slog.String("error", err.Error()))
		return
	}
	for _, m := range result.Rows {
		record := []string{
			m.EntryDate.Format("2006-01-02"),
			m.Reference,
			string(m.Source),
			m.AccountName,
			string(m.AccountType),
			m.Memo,
			m.Debit.StringFixed(2),
			m.Credit.StringFixed(2),
			m.RunningBalance.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			logger.Error("Failed to write CSV row", slog.String("error", err.Error()))
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("CSV writer flush failed", slog.String("error", err.Error()))
	}
}
