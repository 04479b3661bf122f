package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	FullName      string           `json:"full_name" binding:"required"`
	Email         string           `json:"email" binding:"required,email"`
	Position      string           `json:"position"`
	HireDate      string           `json:"hire_date" binding:"required"`
	ContractHours *decimal.Decimal `json:"contract_hours"`
	BaseSalary    decimal.Decimal  `json:"base_salary"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Position string `json:"position"`

	ContractHours       decimal.Decimal `json:"contract_hours"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	FamilySalaryAmount  decimal.Decimal `json:"family_salary_amount"`
	OvertimeAmount      decimal.Decimal `json:"overtime_amount"`
	VacationAmount      decimal.Decimal `json:"vacation_amount"`
	VacationThirdAmount decimal.Decimal `json:"vacation_third_amount"`
	FixedDiscounts      decimal.Decimal `json:"fixed_discounts"`

	HasInsalubrity bool `json:"has_insalubrity"`
	HasNightShift  bool `json:"has_night_shift"`

	VariableDiscounts []VariableDiscountInput `json:"variable_discounts"`
}

type VariableDiscountInput struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

type EmployeeResponse struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Position           string `json:"position"`
	HireDate           string `json:"hire_date"`
	Status             string `json:"status"`

	ContractHours       decimal.Decimal `json:"contract_hours"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	FamilySalaryAmount  decimal.Decimal `json:"family_salary_amount"`
	InsalubrityAmount   decimal.Decimal `json:"insalubrity_amount"`
	NightShiftAmount    decimal.Decimal `json:"night_shift_amount"`
	OvertimeAmount      decimal.Decimal `json:"overtime_amount"`
	VacationAmount      decimal.Decimal `json:"vacation_amount"`
	VacationThirdAmount decimal.Decimal `json:"vacation_third_amount"`
	FixedDiscounts      decimal.Decimal `json:"fixed_discounts"`

	HasInsalubrity bool `json:"has_insalubrity"`
	HasNightShift  bool `json:"has_night_shift"`

	VariableDiscounts []VariableDiscountResponse `json:"variable_discounts"`
}

type VariableDiscountResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// EmployeeOption is the trimmed projection used by dropdowns and pickers.
type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}
