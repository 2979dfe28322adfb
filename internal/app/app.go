package app

import (
	"go-leave/internal/audit"
	"go-leave/internal/balance"
	"go-leave/internal/employee"
	"go-leave/internal/holiday"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/counter"
	"go-leave/internal/tracing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	serviceName = "go-leave"
	maxRetries  = 5
)

// App is a built API process. Close releases its connections.
type App struct {
	Audit audit.Logger

	db  *gorm.DB
	rdb *redis.Client
}

func (a *App) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func BuildApp(router *gin.Engine, cfg Config) (*App, error) {
	logger := zap.L().Named("app")

	// 1. Infrastructure
	db, err := connectDB(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("driver", cfg.DB.Driver))

	application := &App{db: db}

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, maxRetries)
		if err != nil {
			application.Close()
			return nil, err
		}
		application.rdb = rdb
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, holiday cache and idempotency disabled")
	}

	if cfg.TraceOutput != "" {
		output := cfg.TraceOutput
		if output == "stdout" {
			output = ""
		}
		if err := tracing.Init(serviceName, output); err != nil {
			application.Close()
			return nil, err
		}
	}

	rules, err := LoadRules(cfg.PolicyFile)
	if err != nil {
		application.Close()
		return nil, err
	}

	application.Audit = audit.Multi{
		audit.NewStdoutLogger(),
		audit.NewDBLogger(db),
	}

	// 2. Modules & routes
	if err := registerModules(router, moduleDeps{
		cfg:   cfg,
		db:    db,
		rdb:   application.rdb,
		rules: rules,
		audit: application.Audit,
	}); err != nil {
		application.Close()
		return nil, err
	}

	return application, nil
}

func connectDB(cfg Config) (*gorm.DB, error) {
	db, err := connection.ConnectGORMWithRetry(cfg.DB, maxRetries)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&leave.Leave{},
		&leave.Approval{},
		&balance.Balance{},
		&holiday.Holiday{},
		&counter.CompanyCounter{},
		&rbac.RolePermission{},
		&kafka.OutboxEvent{},
		&audit.Record{},
	)
}
