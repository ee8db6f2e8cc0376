package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/internal/conflict"
	"github.com/jyhens/Layer2-Application/internal/customer"
	"github.com/jyhens/Layer2-Application/internal/employee"
	"github.com/jyhens/Layer2-Application/internal/health"
	"github.com/jyhens/Layer2-Application/internal/leave"
	"github.com/jyhens/Layer2-Application/internal/messaging/kafka"
	"github.com/jyhens/Layer2-Application/internal/middleware"
	"github.com/jyhens/Layer2-Application/internal/notification"
	"github.com/jyhens/Layer2-Application/internal/project"
	"github.com/jyhens/Layer2-Application/internal/rbac"
	"github.com/jyhens/Layer2-Application/internal/rbac/infra"
	"github.com/jyhens/Layer2-Application/internal/shared/config"
	"github.com/jyhens/Layer2-Application/internal/workday"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	in *Infra,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(in.GormDB)
	customerRepo := customer.NewRepository(in.GormDB)
	projectRepo := project.NewRepository(in.GormDB)
	leaveRepo := leave.NewRepository(in.GormDB)
	notificationRepo := notification.NewRepository(in.GormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	employeeService := employee.NewService(in.DB, employeeRepo, in.Redis, logger)
	customerService := customer.NewService(in.DB, customerRepo, logger)
	projectService := project.NewService(in.DB, projectRepo, logger)
	notificationService := notification.NewService(in.DB, notificationRepo, logger)
	resolver := conflict.NewResolver(projectRepo, leaveRepo, logger)
	leaveService := leave.NewService(
		in.DB,
		leaveRepo,
		resolver,
		buildNotifier(cfg, in, notificationRepo, logger),
		workday.New(cfg.HolidayCountry),
		logger,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	customerHandler := customer.NewHandler(customerService)
	projectHandler := project.NewHandler(projectService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	notificationHandler := notification.NewHandler(notificationService)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	var cachePinger health.Pinger
	if in.Redis != nil {
		cachePinger = health.RedisPinger{Client: in.Redis}
	}
	healthHandler := health.NewHandler(in.DB, cachePinger, health.Info{
		Name:        cfg.AppName,
		Version:     cfg.AppVersion,
		Environment: cfg.Environment,
		StartedAt:   in.StartedAt,
	}, logger)

	// --- Global Middleware ---
	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.EmployeeIDHeader, middleware.IdempotencyKeyHeader, middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.IdempotentReplayHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RequestID(),
	)

	health.RegisterRoutes(router, healthHandler)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		middleware.AuthMiddleware(employeeService, middleware.AuthConfig{
			Mode:      cfg.AuthMode,
			JWTSecret: cfg.JWTSecret,
		}, logger),
		middleware.ContextLogger(logger.Named("http")),
		middleware.RateLimitByCaller(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		middleware.Idempotency(in.Redis, logger),
	)
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		customer.RegisterRoutes(api, customerHandler, rbacService)
		project.RegisterRoutes(api, projectHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}

// buildNotifier picks the inbox delivery path. The outbox needs the postgres
// schema and a worker, so the sqlite dev store always writes the inbox directly.
func buildNotifier(cfg *config.Config, in *Infra, repo notification.Repository, logger *zap.Logger) leave.Notifier {
	if cfg.NotificationDelivery == config.DeliveryOutbox && cfg.DB.Driver == config.DriverPostgres {
		return notification.NewOutboxNotifier(kafka.NewOutboxRepository(in.DB), cfg.KafkaNotificationTopic)
	}
	if cfg.NotificationDelivery == config.DeliveryOutbox {
		logger.Named("app").Warn("outbox delivery requires postgres, writing notifications directly",
			zap.String("driver", cfg.DB.Driver))
	}
	return notification.NewDirectNotifier(repo)
}
