package handlers

import (
	"github.com/clubledger/clubledger/internal/core/domain"
	portssvc "github.com/clubledger/clubledger/internal/core/ports/services"
	"github.com/clubledger/clubledger/internal/middleware"
	"github.com/clubledger/clubledger/pkg/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	// Public authentication routes (login, signup)
	registerAuthRoutes(r, cfg, services)

	// API v1 routes behind the auth middleware
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Each subgroup is additionally gated on the
// capability its routes require.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	view := v1.Group("", middleware.RequireCapability(domain.CapAccountingView))
	registerRegisterRoutes(view, services.Register)
	registerAccountReadRoutes(view, services.Account, services.Balance)
	registerJournalReadRoutes(view, services.Adjustment)

	manage := v1.Group("", middleware.RequireCapability(domain.CapAccountingManage))
	registerAccountManageRoutes(manage, services.Account)
	registerAdjustmentRoutes(manage, cfg, services.Adjustment)
	registerTransactionRoutes(manage, services.Transaction)

	members := v1.Group("", middleware.RequireCapability(domain.CapMemberManage))
	registerMemberRoutes(members, services.Member)
}
