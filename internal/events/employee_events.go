package events

import "time"

const (
	EmployeeCreatedTopic       = "rh.employee.lifecycle.v1"
	EmployeeStatusChangedTopic = "rh.employee.status.v1"
)

type EmployeeCreatedEvent struct {
	EventType          string    `json:"event_type"`
	EmployeeID         string    `json:"employee_id"`
	RegistrationNumber string    `json:"registration_number"`
	OccurredAt         time.Time `json:"occurred_at"`
}

type EmployeeStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}
