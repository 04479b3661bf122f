package timeoff

import (
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, enforcer *casbin.Enforcer) {
	requests := r.Group("/timeoff")
	requests.Use(auth)
	{
		requests.GET("", middleware.Authorize(enforcer, "timeoff", "read"), handler.GetAll)
		requests.GET("/:id", middleware.Authorize(enforcer, "timeoff", "read"), handler.GetById)
		requests.POST("", middleware.Authorize(enforcer, "timeoff", "write"), handler.Submit)
		requests.POST("/:id/approve", middleware.Authorize(enforcer, "timeoff", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.Authorize(enforcer, "timeoff", "approve"), handler.Reject)
		requests.POST("/grant", middleware.Authorize(enforcer, "timeoff", "approve"), handler.GrantVacation)
	}

	// Same :id param name as the employee routes; gin requires wildcard
	// names to agree on a shared path segment.
	vacations := r.Group("/employees/:id/vacation")
	vacations.Use(auth)
	{
		vacations.GET("/balance", middleware.Authorize(enforcer, "timeoff", "read"), handler.GetBalance)
		vacations.POST("/end", middleware.Authorize(enforcer, "timeoff", "approve"), handler.EndVacationEarly)
	}
}
