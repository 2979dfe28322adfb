package balance

import (
	"go-leave/internal/domain"
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, jwtSecret string) {
	auth := middleware.AuthMiddleware(jwtSecret)

	balances := r.Group("/balances")
	balances.Use(auth)
	{
		balances.GET("/me", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionRead), handler.Mine)
		balances.PUT("", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionManage), handler.Provision)
	}

	r.GET("/employees/:id/balances", auth,
		middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionManage),
		handler.ForEmployee,
	)
}
