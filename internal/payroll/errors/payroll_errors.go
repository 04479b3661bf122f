package payrollerrors

import (
	"net/http"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidOvertimeHours = apperror.New(
		apperror.CodeInvalidInput,
		"overtime_hours must be a non-negative number",
		http.StatusBadRequest,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip document not found for this period",
		http.StatusNotFound,
	)
)
