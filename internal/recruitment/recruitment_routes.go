package recruitment

import (
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, enforcer *casbin.Enforcer) {
	candidates := r.Group("/candidates")
	candidates.Use(auth)
	{
		candidates.GET("", middleware.Authorize(enforcer, "recruitment", "read"), handler.GetAll)
		candidates.GET("/pipeline", middleware.Authorize(enforcer, "recruitment", "read"), handler.GetPipeline)
		candidates.GET("/:id", middleware.Authorize(enforcer, "recruitment", "read"), handler.GetById)
		candidates.POST("", middleware.Authorize(enforcer, "recruitment", "write"), handler.Create)
		candidates.PUT("/:id", middleware.Authorize(enforcer, "recruitment", "write"), handler.Update)
		candidates.POST("/:id/move", middleware.Authorize(enforcer, "recruitment", "write"), handler.Move)
		candidates.POST("/:id/convert", middleware.Authorize(enforcer, "recruitment", "write"), handler.Convert)
		candidates.DELETE("/:id", middleware.Authorize(enforcer, "recruitment", "write"), handler.Delete)
	}
}
