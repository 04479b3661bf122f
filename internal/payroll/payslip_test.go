package payroll_test

import (
	"testing"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/config"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/payroll"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		VacationEntitlementDays: 30,
		ReferenceWage:           decimal.RequireFromString("1412.00"),
		InsalubrityRate:         decimal.RequireFromString("0.20"),
		NightShiftRate:          decimal.RequireFromString("0.20"),
		OvertimeMultiplier:      decimal.RequireFromString("1.5"),
	}
}

func baseEmployee() payroll.PayrollEmployee {
	return payroll.PayrollEmployee{
		ID:                 uuid.New(),
		RegistrationNumber: "EMP-000042",
		FullName:           "Maria Souza",
		Status:             "active",
		ContractHours:      decimal.NewFromInt(200),
		BaseSalary:         decimal.NewFromInt(3000),
	}
}

func TestComputePayslip_InsalubrityUsesReferenceWage(t *testing.T) {
	emp := baseEmployee()
	emp.HasInsalubrity = true

	line := payroll.ComputePayslip(emp, nil, testPolicy(), nil)

	var insalubrity *decimal.Decimal
	for _, item := range line.Earnings {
		if item.Description == "Insalubrity" {
			v := item.Amount
			insalubrity = &v
		}
	}
	assert.NotNil(t, insalubrity)
	assert.Equal(t, "282.40", insalubrity.StringFixed(2))
	assert.Equal(t, "3282.40", line.TotalEarnings.StringFixed(2))
	assert.Equal(t, "3282.40", line.NetPay.StringFixed(2))
}

func TestComputePayslip_NightShiftUsesBaseSalary(t *testing.T) {
	emp := baseEmployee()
	emp.HasNightShift = true

	line := payroll.ComputePayslip(emp, nil, testPolicy(), nil)

	assert.Equal(t, "3600.00", line.TotalEarnings.StringFixed(2))
}

func TestComputePayslip_HourlyRateAndOvertime(t *testing.T) {
	emp := baseEmployee()

	hours := decimal.NewFromInt(10)
	line := payroll.ComputePayslip(emp, nil, testPolicy(), &hours)

	// 3000 / 200 = 15.00/h, 10h * 15 * 1.5 = 225.00
	assert.Equal(t, "15.0000", line.HourlyRate.StringFixed(4))
	assert.Equal(t, "3225.00", line.TotalEarnings.StringFixed(2))
}

func TestComputePayslip_ZeroContractHours(t *testing.T) {
	emp := baseEmployee()
	emp.ContractHours = decimal.Zero

	hours := decimal.NewFromInt(10)
	line := payroll.ComputePayslip(emp, nil, testPolicy(), &hours)

	assert.True(t, line.HourlyRate.IsZero())
	assert.Equal(t, "3000.00", line.TotalEarnings.StringFixed(2))
}

func TestComputePayslip_StoredOvertimeWhenNoHoursGiven(t *testing.T) {
	emp := baseEmployee()
	emp.OvertimeAmount = decimal.RequireFromString("150.50")

	line := payroll.ComputePayslip(emp, nil, testPolicy(), nil)

	assert.Equal(t, "3150.50", line.TotalEarnings.StringFixed(2))
}

func TestComputePayslip_DiscountsAndNegativeNetPay(t *testing.T) {
	emp := baseEmployee()
	emp.FixedDiscounts = decimal.NewFromInt(2800)

	discounts := []payroll.LineItem{
		{Description: "Equipment damage", Amount: decimal.NewFromInt(500)},
	}

	line := payroll.ComputePayslip(emp, discounts, testPolicy(), nil)

	assert.Equal(t, "3300.00", line.TotalDiscounts.StringFixed(2))
	assert.Equal(t, "-300.00", line.NetPay.StringFixed(2))
	assert.Len(t, line.Discounts, 2)
}

func TestComputePayslip_OnlyPositiveEarningsItemized(t *testing.T) {
	emp := baseEmployee()

	line := payroll.ComputePayslip(emp, nil, testPolicy(), nil)

	assert.Len(t, line.Earnings, 1)
	assert.Equal(t, "Base salary", line.Earnings[0].Description)
}
