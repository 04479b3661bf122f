package timeoff

import (
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/calendar"
	timeofferrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/timeoff/errors"
)

// VacationBalance describes one acquisition period: the rolling 12-month
// window anchored to the most recently completed hire anniversary.
type VacationBalance struct {
	PeriodStart calendar.Date
	PeriodEnd   calendar.Date
	TakenDays   int
	Balance     int
}

// ActiveReturn is derived for an employee currently on vacation: when they
// come back and how many days remain.
type ActiveReturn struct {
	ReturnDate calendar.Date
	DaysLeft   int
}

// ComputeVacationBalance derives the current accrual period and remaining
// balance from the hire date and the employee's approved vacation requests.
// Pure and idempotent; safe to call any number of times.
//
// Only requests whose start date falls within [periodStart, periodEnd) are
// counted. An absent hire date is an error: silently assuming "hired today"
// would always report a full balance.
func ComputeVacationBalance(
	hireDate calendar.Date,
	approvedVacation []TimeOffRequest,
	asOf calendar.Date,
	entitlementDays int,
) (VacationBalance, error) {
	if hireDate.IsZero() {
		return VacationBalance{}, timeofferrors.ErrMissingHireDate
	}

	years := calendar.YearsElapsed(hireDate, asOf)
	periodStart := hireDate.AddYears(years)
	periodEnd := periodStart.AddYears(1)

	taken := 0
	for _, req := range approvedVacation {
		if req.Status != StatusApproved || req.Type != TypeVacation {
			continue
		}
		start := calendar.FromTime(req.StartDate)
		if start.Before(periodStart) || start.AfterOrEqual(periodEnd) {
			continue
		}
		days, err := calendar.DaysBetweenInclusive(start, calendar.FromTime(req.EndDate))
		if err != nil {
			return VacationBalance{}, err
		}
		taken += days
	}

	balance := entitlementDays - taken
	if balance < 0 {
		balance = 0
	}

	return VacationBalance{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		TakenDays:   taken,
		Balance:     balance,
	}, nil
}

// LatestApprovedReturn finds the most-recently-ending approved vacation
// request and derives the return date from it. Returns nil when the latest
// request has already lapsed.
func LatestApprovedReturn(approvedVacation []TimeOffRequest, today calendar.Date) *ActiveReturn {
	var latest *TimeOffRequest
	for i := range approvedVacation {
		req := &approvedVacation[i]
		if req.Status != StatusApproved || req.Type != TypeVacation {
			continue
		}
		if latest == nil || req.EndDate.After(latest.EndDate) {
			latest = req
		}
	}
	if latest == nil {
		return nil
	}

	end := calendar.FromTime(latest.EndDate)
	if end.Before(today) {
		return nil
	}

	daysLeft, err := calendar.DaysBetweenInclusive(today, end)
	if err != nil {
		return nil
	}

	return &ActiveReturn{
		ReturnDate: end.AddDays(1),
		DaysLeft:   daysLeft,
	}
}
