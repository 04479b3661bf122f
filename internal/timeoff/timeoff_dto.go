package timeoff

type SubmitTimeOffRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	Type          string  `json:"type" binding:"required,oneof=vacation sick personal maternity paternity"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url"`
}

type GrantVacationRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Days       int    `json:"days" binding:"required"`
	StartDate  string `json:"start_date"`
}

type TimeOffResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Type          string  `json:"type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     int     `json:"total_days"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
}

type BalanceResponse struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	TakenDays   int    `json:"taken_days"`
	Balance     int    `json:"balance"`

	ReturnDate *string `json:"return_date,omitempty"`
	DaysLeft   *int    `json:"days_left,omitempty"`
}

type EndVacationResponse struct {
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
}
