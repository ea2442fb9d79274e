package customer

import (
	"go-salon/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	customers := r.Group("/customer")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "customer", "read"),
			handler.GetAll,
		)

		customers.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "customer", "read"),
			handler.GetById,
		)

		customers.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "customer", "create"),
			handler.Create,
		)

		customers.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "customer", "update"),
			handler.Update,
		)

		customers.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "customer", "delete"),
			handler.Delete,
		)
	}
}
