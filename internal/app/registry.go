package app

import (
	"database/sql"
	"path/filepath"

	"go-salon/internal/appointment"
	"go-salon/internal/catalog"
	"go-salon/internal/customer"
	"go-salon/internal/employee"
	"go-salon/internal/messaging/kafka"
	"go-salon/internal/middleware"
	"go-salon/internal/payroll"
	"go-salon/internal/rbac"
	"go-salon/internal/rbac/infra"
	"go-salon/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	customerRepo := customer.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	catalogRepo := catalog.NewRepository(gormDB)
	appointmentRepo := appointment.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	customerService := customer.NewService(db, customerRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)
	catalogService := catalog.NewService(db, catalogRepo, rdb)
	appointmentService := appointment.NewService(db, appointmentRepo, catalogRepo, counterRepo, outboxRepo)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo)

	// --- Handlers ---
	customerHandler := customer.NewHandler(customerService)
	employeeHandler := employee.NewHandler(employeeService)
	catalogHandler := catalog.NewHandler(catalogService)
	appointmentHandler := appointment.NewHandlerWithRedis(appointmentService, rdb)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api")
	{
		customer.RegisterRoutes(api, customerHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		catalog.RegisterRoutes(api, catalogHandler, rbacService)
		appointment.RegisterRoutes(api, appointmentHandler, rbacService, rdb)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}
