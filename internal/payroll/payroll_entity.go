package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollEmployee is the projection of the employees table the calculator
// works on.
type PayrollEmployee struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegistrationNumber string    `gorm:"column:registration_number"`
	FullName           string    `gorm:"column:full_name"`
	Position           string
	Status             string

	ContractHours       decimal.Decimal
	BaseSalary          decimal.Decimal
	FamilySalaryAmount  decimal.Decimal
	InsalubrityAmount   decimal.Decimal
	NightShiftAmount    decimal.Decimal
	OvertimeAmount      decimal.Decimal
	VacationAmount      decimal.Decimal
	VacationThirdAmount decimal.Decimal
	FixedDiscounts      decimal.Decimal

	HasInsalubrity bool
	HasNightShift  bool
}

func (PayrollEmployee) TableName() string {
	return "employees"
}

// PayslipDocument is a rendered payslip PDF kept for download. One row per
// employee per period.
type PayslipDocument struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_employee_period,unique"`
	Period      string    `gorm:"type:varchar(7);not null;index:idx_payslip_employee_period,unique"`
	Content     []byte    `gorm:"type:bytea;not null"`
	GeneratedAt time.Time `gorm:"not null"`
}
