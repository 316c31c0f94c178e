package employee

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hr-admin/internal/access"
	"hr-admin/internal/middleware"
	"hr-admin/internal/routemap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	decider access.Decider,
	rdb *redis.Client,
	jwtSecret string,
	logger *zap.Logger,
) {
	entity := routemap.EntityFor("employees")

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(jwtSecret))
	employees.Use(middleware.ContextLogger(logger))
	employees.Use(middleware.Authorize(decider, entity))
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			handler.Delete,
		)
	}
}
