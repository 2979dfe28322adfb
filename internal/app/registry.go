package app

import (
	"go-leave/internal/audit"
	"go-leave/internal/balance"
	"go-leave/internal/chain"
	"go-leave/internal/employee"
	"go-leave/internal/holiday"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/notification"
	"go-leave/internal/policy"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/shared/counter"
	"go-leave/internal/shared/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ipRequestsPerSecond = 20
	ipBurst             = 40
)

type moduleDeps struct {
	cfg   Config
	db    *gorm.DB
	rdb   *redis.Client
	rules RulesFile
	audit audit.Logger
}

func registerModules(router *gin.Engine, deps moduleDeps) error {
	logger := zap.L()

	router.Use(
		middleware.Recovery(logger),
		middleware.ContextLogger(logger),
		cors.New(corsConfig()),
		middleware.RateLimitByIP(ipRequestsPerSecond, ipBurst),
	)

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(deps.db)
	employeeRepo := employee.NewRepository(deps.db)
	balanceRepo := balance.NewRepository(deps.db)
	holidayRepo := holiday.NewRepository(deps.db)
	leaveRepo := leave.NewRepository(deps.db)
	approvalRepo := leave.NewApprovalRepository(deps.db)
	counterRepo := counter.NewRepository(deps.db)
	outboxRepo := kafka.NewOutboxRepository(deps.db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(deps.cfg.RBACModel)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Rules ---
	engine := policy.NewDefaultEngine(deps.rules.Policy)
	resolver := chain.NewResolver(deps.rules.Approval)

	// --- Services ---
	balanceService := balance.NewService(balanceRepo)
	holidayService := holiday.NewService(holidayRepo, deps.rdb)
	leaveService := leave.NewService(leave.Deps{
		TxManager:       database.NewTxManager(deps.db),
		Leaves:          leaveRepo,
		Approvals:       approvalRepo,
		Employees:       employeeRepo,
		Balances:        balanceService,
		Holidays:        holidayService,
		Counter:         counterRepo,
		Resolver:        resolver,
		Engine:          engine,
		Dispatcher:      notification.NewOutboxDispatcher(outboxRepo),
		Audit:           deps.audit,
		MinReasonLength: deps.cfg.MinReasonLength,
	})

	// --- Handlers ---
	balanceHandler := balance.NewHandler(balanceService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService, rbacService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService, deps.rdb, deps.cfg.JWTSecret)
		balance.RegisterRoutes(api, balanceHandler, rbacService, deps.cfg.JWTSecret)
		holiday.RegisterRoutes(api, holidayHandler, rbacService, deps.cfg.JWTSecret)
		rbac.RegisterRoutes(api, rbacHandler, deps.cfg.JWTSecret)
	}

	return nil
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.HeaderIdempotencyKey, middleware.HeaderRequestID)
	return cfg
}
