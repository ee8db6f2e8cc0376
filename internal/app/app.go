package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jyhens/Layer2-Application/db/migrations"
	"github.com/jyhens/Layer2-Application/internal/customer"
	"github.com/jyhens/Layer2-Application/internal/employee"
	"github.com/jyhens/Layer2-Application/internal/leave"
	"github.com/jyhens/Layer2-Application/internal/notification"
	"github.com/jyhens/Layer2-Application/internal/project"
	"github.com/jyhens/Layer2-Application/internal/seed"
	"github.com/jyhens/Layer2-Application/internal/shared/config"
	"github.com/jyhens/Layer2-Application/internal/shared/connection"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the connections shared by every module of the API process.
type Infra struct {
	GormDB    *gorm.DB
	DB        *sql.DB
	Redis     *redis.Client
	StartedAt time.Time
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
}

// BuildApp connects infrastructure, prepares the schema and registers all
// routes on router. The returned Infra must be closed by the caller.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	log := logger.Named("app")
	infra := &Infra{StartedAt: time.Now()}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	infra.GormDB = gormDB

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	infra.DB = sqlDB

	if err := prepareSchema(gormDB, sqlDB, cfg.DB.Driver, logger); err != nil {
		infra.Close()
		return nil, err
	}

	if cfg.SeedDemoData {
		if _, err := seed.Run(ctx, gormDB, logger); err != nil {
			infra.Close()
			return nil, err
		}
	}

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries, logger)
		if err != nil {
			// cache and idempotency are optional
			log.Warn("redis unavailable, continuing without cache", zap.Error(err))
		} else {
			infra.Redis = rdb
		}
	}

	if err := registerModules(router, cfg, infra, logger); err != nil {
		infra.Close()
		return nil, err
	}
	return infra, nil
}

// prepareSchema runs versioned migrations on postgres. The sqlite dev store
// is created from the entity definitions instead.
func prepareSchema(gormDB *gorm.DB, sqlDB *sql.DB, driver string, logger *zap.Logger) error {
	switch driver {
	case config.DriverPostgres:
		return migrations.Up(sqlDB, logger)
	case config.DriverSQLite:
		err := gormDB.AutoMigrate(
			&employee.Employee{},
			&customer.Customer{},
			&project.Project{},
			&project.Assignment{},
			&leave.LeaveRequest{},
			&notification.Notification{},
		)
		if err != nil {
			return fmt.Errorf("automigrate sqlite schema: %w", err)
		}
		return nil
	default:
		return errors.New("unsupported database driver " + driver)
	}
}
