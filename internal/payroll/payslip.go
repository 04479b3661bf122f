package payroll

import (
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/config"

	"github.com/shopspring/decimal"
)

type LineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type PayslipLine struct {
	EmployeeID         string          `json:"employee_id"`
	RegistrationNumber string          `json:"registration_number"`
	FullName           string          `json:"full_name"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	Earnings           []LineItem      `json:"earnings"`
	Discounts          []LineItem      `json:"discounts"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	TotalDiscounts     decimal.Decimal `json:"total_discounts"`
	NetPay             decimal.Decimal `json:"net_pay"`
}

// ComputePayslip derives one employee's payslip from the current field
// values. Pure: no storage reads, no side effects, safe to call repeatedly.
//
// When overtimeHours is supplied it replaces the stored flat overtime
// amount: hours * hourlyRate * multiplier. Zero contracted hours yields a
// zero hourly rate rather than an error; the value is display-grade, not a
// payment instruction.
//
// Only earnings with a positive value are itemized; totals include
// everything. NetPay is deliberately not clamped: a negative result is a
// valid, alarming output the caller must surface.
func ComputePayslip(
	emp PayrollEmployee,
	variableDiscounts []LineItem,
	policy config.PolicyConfig,
	overtimeHours *decimal.Decimal,
) PayslipLine {
	hourlyRate := decimal.Zero
	if emp.ContractHours.IsPositive() {
		hourlyRate = emp.BaseSalary.DivRound(emp.ContractHours, 4)
	}

	insalubrity := decimal.Zero
	if emp.HasInsalubrity {
		insalubrity = policy.ReferenceWage.Mul(policy.InsalubrityRate).Round(2)
	}

	nightShift := decimal.Zero
	if emp.HasNightShift {
		nightShift = emp.BaseSalary.Mul(policy.NightShiftRate).Round(2)
	}

	overtime := emp.OvertimeAmount
	if overtimeHours != nil {
		overtime = overtimeHours.Mul(hourlyRate).Mul(policy.OvertimeMultiplier).Round(2)
	}

	line := PayslipLine{
		EmployeeID:         emp.ID.String(),
		RegistrationNumber: emp.RegistrationNumber,
		FullName:           emp.FullName,
		HourlyRate:         hourlyRate,
	}

	earnings := []LineItem{
		{Description: "Base salary", Amount: emp.BaseSalary},
		{Description: "Family salary", Amount: emp.FamilySalaryAmount},
		{Description: "Insalubrity", Amount: insalubrity},
		{Description: "Night shift", Amount: nightShift},
		{Description: "Overtime", Amount: overtime},
		{Description: "Vacation", Amount: emp.VacationAmount},
		{Description: "Vacation 1/3", Amount: emp.VacationThirdAmount},
	}

	total := decimal.Zero
	for _, item := range earnings {
		total = total.Add(item.Amount)
		if item.Amount.IsPositive() {
			line.Earnings = append(line.Earnings, item)
		}
	}
	line.TotalEarnings = total

	totalDiscounts := emp.FixedDiscounts
	if emp.FixedDiscounts.IsPositive() {
		line.Discounts = append(line.Discounts, LineItem{Description: "Fixed discounts", Amount: emp.FixedDiscounts})
	}
	for _, d := range variableDiscounts {
		totalDiscounts = totalDiscounts.Add(d.Amount)
		if d.Amount.IsPositive() {
			line.Discounts = append(line.Discounts, d)
		}
	}
	line.TotalDiscounts = totalDiscounts

	line.NetPay = line.TotalEarnings.Sub(line.TotalDiscounts)
	return line
}
