package timeoff

import (
	"time"

	"github.com/google/uuid"
)

// Request types.
const (
	TypeVacation  = "vacation"
	TypeSick      = "sick"
	TypePersonal  = "personal"
	TypeMaternity = "maternity"
	TypePaternity = "paternity"
)

func IsValidType(t string) bool {
	switch t {
	case TypeVacation, TypeSick, TypePersonal, TypeMaternity, TypePaternity:
		return true
	}
	return false
}

// Request statuses. pending is the only non-terminal state.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type TimeOffRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_timeoff_employee_dates"`

	Type      string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_timeoff_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_timeoff_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`

	Reason        string  `gorm:"type:text"`
	AttachmentURL *string `gorm:"type:text"`

	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeSnapshot is the slice of the employees table the lifecycle needs:
// hire date for accrual and status for the approval side effect.
type EmployeeSnapshot struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	HireDate time.Time `gorm:"type:date"`
	Status   string
}

func (EmployeeSnapshot) TableName() string {
	return "employees"
}
