package appointment

import (
	"go-salon/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	appointments := r.Group("/appointment")
	appointments.Use(middleware.AuthMiddleware())
	{
		appointments.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "appointment", "read"),
			handler.GetAll,
		)

		appointments.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "appointment", "read"),
			handler.GetById,
		)

		// Booking dari front desk rawan dobel-submit
		appointments.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "appointment", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		appointments.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "appointment", "update"),
			handler.Update,
		)

		appointments.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "appointment", "delete"),
			handler.Delete,
		)
	}
}
