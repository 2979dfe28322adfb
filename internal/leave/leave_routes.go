package leave

import (
	"go-leave/internal/domain"
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	userRequestsPerSecond = 5
	userBurst             = 20
)

// RegisterRoutes mounts the leave and approval endpoints. rdb backs the
// idempotency guard on mutating calls and may be nil.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	jwtSecret string,
) {
	auth := middleware.AuthMiddleware(jwtSecret)
	idem := middleware.Idempotency(rdb)
	limit := middleware.RateLimitByUser(userRequestsPerSecond, userBurst)

	canCreate := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCreate)
	canRead := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead)
	canApprove := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionApprove)

	leaves := r.Group("/leaves")
	leaves.Use(auth, limit)
	{
		leaves.POST("", canCreate, idem, handler.Submit)
		leaves.POST("/preview", canCreate, handler.Preview)
		leaves.GET("", canRead, handler.GetAll)
		leaves.GET("/:id", canRead, handler.GetByID)
		leaves.GET("/:id/approvals", canRead, handler.History)
		leaves.PUT("/:id/resubmit", canCreate, idem, handler.Resubmit)
		leaves.POST("/:id/cancel", canCreate, idem, handler.Cancel)

		leaves.POST("/:id/approve", canApprove, idem, handler.Approve)
		leaves.POST("/:id/reject", canApprove, idem, handler.Reject)
		leaves.POST("/:id/forward", canApprove, idem, handler.Forward)
		leaves.POST("/:id/return", canApprove, idem, handler.Return)
	}

	approvals := r.Group("/approvals")
	approvals.Use(auth, limit)
	{
		approvals.GET("/pending", canApprove, handler.Pending)
		approvals.POST("/bulk-approve", canApprove, idem, handler.BulkApprove)
	}
}
