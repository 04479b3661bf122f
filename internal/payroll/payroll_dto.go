package payroll

type PayslipQuery struct {
	OvertimeHours *string `form:"overtime_hours"`
}

type RequestPayslipRequest struct {
	Period string `json:"period" binding:"required"`
}

type RequestPayslipResponse struct {
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"`
	Status     string `json:"status"`
}

type CloseMonthResponse struct {
	UpdatedCount int            `json:"updated_count"`
	Failed       []CloseFailure `json:"failed"`
}

type CloseFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}
