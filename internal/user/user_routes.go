package user

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hr-admin/internal/access"
	"hr-admin/internal/middleware"
	"hr-admin/internal/routemap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	decider access.Decider,
	jwtSecret string,
	logger *zap.Logger,
) {
	entity := routemap.EntityFor("users")

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtSecret))
	users.Use(middleware.ContextLogger(logger))
	users.Use(middleware.Authorize(decider, entity))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)
	}
}
