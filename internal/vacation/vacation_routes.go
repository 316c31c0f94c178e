package vacation

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
	entity := routemap.EntityFor("vacation-requests")

	requests := r.Group("/vacation-requests")
	requests.Use(middleware.AuthMiddleware(jwtSecret))
	requests.Use(middleware.ContextLogger(logger))
	requests.Use(middleware.Authorize(decider, entity))
	{
		requests.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)

		requests.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)

		requests.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		requests.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)

		requests.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			handler.Delete,
		)
	}
}
