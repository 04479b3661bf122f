package events

import "time"

const (
	PayrollMonthClosedTopic      = "rh.payroll.close.v1"
	PayrollPayslipRequestedTopic = "rh.payroll.payslip.requested.v1"
)

type PayrollMonthClosedEvent struct {
	EventType    string    `json:"event_type"`
	UpdatedCount int       `json:"updated_count"`
	FailedCount  int       `json:"failed_count"`
	ClosedBy     string    `json:"closed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type PayrollPayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	EmployeeID  string    `json:"employee_id"`
	Period      string    `json:"period"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
