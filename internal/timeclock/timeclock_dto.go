package timeclock

type ClockInRequest struct {
	Notes *string `json:"notes"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes"`
}

type EntryResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	ClockIn    string  `json:"clock_in"`
	ClockOut   *string `json:"clock_out,omitempty"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
}

type SummaryQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type SummaryResponse struct {
	EmployeeID  string `json:"employee_id"`
	From        string `json:"from"`
	To          string `json:"to"`
	DaysWorked  int    `json:"days_worked"`
	LateDays    int    `json:"late_days"`
	WorkedHours string `json:"worked_hours"`
	OpenEntries int    `json:"open_entries"`
}
