package employee

import (
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, enforcer *casbin.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(auth)
	{
		employees.GET("", middleware.Authorize(enforcer, "employee", "read"), handler.GetAll)
		employees.GET("/options", middleware.Authorize(enforcer, "employee", "read"), handler.GetOptions)
		employees.GET("/:id", middleware.Authorize(enforcer, "employee", "read"), handler.GetById)
		employees.POST("", middleware.Authorize(enforcer, "employee", "write"), handler.Create)
		employees.PUT("/:id", middleware.Authorize(enforcer, "employee", "write"), handler.Update)
		employees.POST("/:id/terminate", middleware.Authorize(enforcer, "employee", "write"), handler.Terminate)
		employees.DELETE("/:id", middleware.Authorize(enforcer, "employee", "delete"), handler.Delete)
	}
}
