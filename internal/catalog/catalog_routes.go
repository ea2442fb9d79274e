package catalog

import (
	"go-salon/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	services := r.Group("/service")
	services.Use(middleware.AuthMiddleware())
	{
		services.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "service", "read"),
			handler.GetAll,
		)

		services.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "service", "read"),
			handler.GetById,
		)

		services.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "service", "create"),
			handler.Create,
		)

		services.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "service", "update"),
			handler.Update,
		)

		services.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "service", "delete"),
			handler.Delete,
		)
	}
}
