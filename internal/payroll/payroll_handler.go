package payroll

import (
	"fmt"
	"net/http"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/middleware"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/apperror"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetPayslip(c *gin.Context) {
	var query PayslipQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.GetPayslip(c.Request.Context(), c.Param("id"), query.OvertimeHours)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RequestPayslip(c *gin.Context) {
	actorID := c.GetString(middleware.ContextUserID)

	var req RequestPayslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http request payslip validation failed", zap.Error(err))
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.RequestPayslip(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, resp, nil)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	doc, err := h.service.DownloadPayslip(c.Request.Context(), c.Param("id"), c.Param("period"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("payslip-%s-%s.pdf", doc.EmployeeID, doc.Period)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

func (h *Handler) CloseMonth(c *gin.Context) {
	actorID := c.GetString(middleware.ContextUserID)

	resp, err := h.service.CloseMonth(c.Request.Context(), actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
