package holiday

import (
	"go-leave/internal/domain"
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, jwtSecret string) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware(jwtSecret))
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionRead), handler.List)
		holidays.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionManage), handler.Create)
	}
}
