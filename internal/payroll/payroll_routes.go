package payroll

import (
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	enforcer *casbin.Enforcer,
	idempotency gin.HandlerFunc,
) {
	payroll := r.Group("/payroll")
	payroll.Use(auth)
	{
		payroll.POST("/close",
			middleware.Authorize(enforcer, "payroll", "close"),
			idempotency,
			handler.CloseMonth,
		)
	}

	// Shares the :id wildcard with the employee routes.
	payslips := r.Group("/employees/:id/payslip")
	payslips.Use(auth)
	{
		payslips.GET("", middleware.Authorize(enforcer, "payroll", "read"), handler.GetPayslip)
		payslips.POST("", middleware.Authorize(enforcer, "payroll", "write"), handler.RequestPayslip)
		payslips.GET("/:period/download", middleware.Authorize(enforcer, "payroll", "read"), handler.DownloadPayslip)
	}
}
