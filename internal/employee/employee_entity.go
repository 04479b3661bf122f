package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employment status values. These are the canonical identifiers used across
// the whole engine; display-language mapping belongs to the UI, never here.
const (
	StatusActive     = "active"
	StatusVacation   = "vacation"
	StatusLeave      = "leave"
	StatusTerminated = "terminated"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusVacation, StatusLeave, StatusTerminated:
		return true
	}
	return false
}

type Employee struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegistrationNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	FullName           string    `gorm:"type:varchar(150);not null"`
	Email              string    `gorm:"type:varchar(150);uniqueIndex"`
	Position           string    `gorm:"type:varchar(100)"`

	// HireDate anchors the vacation accrual period and is immutable after
	// creation.
	HireDate time.Time `gorm:"type:date;not null"`
	Status   string    `gorm:"type:varchar(20);not null;default:'active';index"`

	ContractHours decimal.Decimal `gorm:"type:numeric(6,2);not null;default:220"`

	// Monetary fields. BaseSalary and FixedDiscounts survive the monthly
	// close; the rest are variable inputs reset at each period boundary.
	BaseSalary          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	FamilySalaryAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	InsalubrityAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NightShiftAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OvertimeAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	VacationAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	VacationThirdAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	FixedDiscounts      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	HasInsalubrity bool `gorm:"not null;default:false"`
	HasNightShift  bool `gorm:"not null;default:false"`

	VariableDiscounts []VariableDiscount `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// VariableDiscount is one ad-hoc deduction line for the current period.
// Position preserves the order HR entered them in.
type VariableDiscount struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(150);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Position    int             `gorm:"type:int;not null;default:0"`
	CreatedAt   time.Time
}
