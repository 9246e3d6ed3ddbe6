package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/clubledger/clubledger/internal/apperrors"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/clubledger/clubledger/internal/dto"
	"github.com/clubledger/clubledger/internal/middleware"
	"github.com/clubledger/clubledger/internal/utils"
	"github.com/clubledger/clubledger/pkg/config"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the generic error body for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authHandler handles login and public signup.
type authHandler struct {
	memberService portssvc.MemberSvc
	jwtSecret     string
	jwtDuration   time.Duration
	jwtIssuer     string
}

func newAuthHandler(ms portssvc.MemberSvc, cfg *config.Config) *authHandler {
	return &authHandler{
		memberService: ms,
		jwtSecret:     cfg.JWTSecret,
		jwtDuration:   cfg.JWTExpiryDuration,
		jwtIssuer:     cfg.JWTIssuer,
	}
}

// rateLimitByIP builds a per-IP limiter middleware over its own memory
// store. A malformed rate falls back to the default rather than leaving the
// route unthrottled.
func rateLimitByIP(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}

// registerAuthRoutes sets up the public authentication routes. Both are rate
// limited per client IP since they sit outside the auth middleware.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Member, cfg)
	limitMiddleware := rateLimitByIP(cfg.AuthRateLimit)

	auth := r.Group("/auth")
	{
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/signup", limitMiddleware, h.signup)
	}
}

// login authenticates a member and returns a bearer token carrying the
// member's capabilities.
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	member, err := h.memberService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		} else {
			logger.Error("Login failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		}
		return
	}

	token, expiresAt, err := utils.GenerateJWT(member.MemberID, member.Capabilities, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// signup handles the public membership application form.
func (h *authHandler) signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	member, assessment, err := h.memberService.Signup(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			// Covers both blocked submissions and field-level failures; the
			// body stays generic on purpose.
			logger.Warn("Signup rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Your application could not be accepted"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email is already registered"})
		} else {
			logger.Error("Signup failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process application"})
		}
		return
	}

	status := "active"
	if assessment != nil && assessment.Verdict != "" && !member.IsActive {
		status = "pending_review"
	}
	c.JSON(http.StatusCreated, gin.H{
		"member": dto.ToMemberResponse(member),
		"status": status,
	})
}
