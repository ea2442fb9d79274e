package payroll

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
	payrolls := r.Group("/payroll")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.POST("/generation",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.Generate,
		)

		payrolls.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAll,
		)

		payrolls.GET("/generation",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetGenerations,
		)

		payrolls.GET("/generation/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetGenerationDetail,
		)

		payrolls.DELETE("/generation/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "delete"),
			handler.DeleteGeneration,
		)

		payrolls.PATCH("/generation/:id/pay-all",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.PayAll,
		)

		payrolls.PATCH("/:id/pay",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.MarkAsPaid,
		)

		payrolls.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.Update,
		)
	}
}
