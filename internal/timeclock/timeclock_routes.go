package timeclock

import (
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, enforcer *casbin.Enforcer) {
	entries := r.Group("/timeclock")
	entries.Use(auth)
	{
		entries.GET("", middleware.Authorize(enforcer, "timeclock", "read"), handler.GetAll)
		entries.POST("/in", middleware.Authorize(enforcer, "timeclock", "write"), handler.ClockIn)
		entries.POST("/out", middleware.Authorize(enforcer, "timeclock", "write"), handler.ClockOut)
	}

	summary := r.Group("/employees/:id/timeclock")
	summary.Use(auth)
	{
		summary.GET("/summary", middleware.Authorize(enforcer, "timeclock", "read"), handler.GetSummary)
	}
}
