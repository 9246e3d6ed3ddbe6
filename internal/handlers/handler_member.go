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

// memberHandler handles member administration.
type memberHandler struct {
	memberService portssvc.MemberSvc
}

func newMemberHandler(ms portssvc.MemberSvc) *memberHandler {
	return &memberHandler{memberService: ms}
}

// registerMemberRoutes registers the member administration routes.
func registerMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvc) {
	h := newMemberHandler(memberService)

	members := rg.Group("/members")
	{
		members.POST("", h.createMember)
		members.GET("", h.listMembers)
		members.GET("/:id", h.getMember)
		members.PUT("/:id", h.updateMember)
		members.DELETE("/:id", h.deactivateMember)
	}
}

func (h *memberHandler) createMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetMemberIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create member", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create member"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

func (h *memberHandler) getMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	member, err := h.memberService.GetMemberByID(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Member not found"})
		} else {
			logger.Error("Failed to get member", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve member"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

func (h *memberHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list members", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list members"})
		return
	}

	responses := make([]dto.MemberResponse, len(members))
	for i, m := range members {
		responses[i] = dto.ToMemberResponse(&m)
	}
	c.JSON(http.StatusOK, dto.ListMembersResponse{Members: responses})
}

func (h *memberHandler) updateMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterID, ok := middleware.GetMemberIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), memberID, req, updaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Member not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update member", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update member"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

func (h *memberHandler) deactivateMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("id")

	updaterID, ok := middleware.GetMemberIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.memberService.DeactivateMember(c.Request.Context(), memberID, updaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Member not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Member already inactive"})
		} else {
			logger.Error("Failed to deactivate member", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate member"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
