// Package calendar provides timezone-naive calendar date arithmetic.
//
// Every Date is normalized to UTC midnight. Callers must never feed
// timestamps with a time-of-day component into balance or accrual math;
// converting through local timezones is how off-by-one day errors happen,
// so the conversion is done once, here.
package calendar

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date is before start date")

const layout = "2006-01-02"

// Date is a calendar day with no time-of-day and no timezone.
type Date struct {
	t time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a timestamp to its calendar day, dropping the timezone.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, err
	}
	return FromTime(t), nil
}

func Today() Date {
	return FromTime(time.Now())
}

func (d Date) Time() time.Time          { return d.t }
func (d Date) IsZero() bool             { return d.t.IsZero() }
func (d Date) Year() int                { return d.t.Year() }
func (d Date) Month() time.Month        { return d.t.Month() }
func (d Date) Day() int                 { return d.t.Day() }
func (d Date) String() string           { return d.t.Format(layout) }
func (d Date) Before(other Date) bool   { return d.t.Before(other.t) }
func (d Date) After(other Date) bool    { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool    { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(o Date) bool { return !d.After(o) }
func (d Date) AfterOrEqual(o Date) bool  { return !d.Before(o) }

func (d Date) AddDays(n int) Date {
	return FromTime(d.t.AddDate(0, 0, n))
}

// AddYears shifts the date by whole years. A Feb 29 anchor landing on a
// non-leap year resolves to Feb 28, not Mar 1.
func (d Date) AddYears(n int) Date {
	year := d.Year() + n
	if d.Month() == time.February && d.Day() == 29 && !isLeap(year) {
		return New(year, time.February, 28)
	}
	return New(year, d.Month(), d.Day())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysBetweenInclusive counts the days from start through end, both included.
func DaysBetweenInclusive(start, end Date) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return int(end.t.Sub(start.t).Hours()/24) + 1, nil
}

// YearsElapsed returns the number of complete years between two dates with
// floor semantics: an anniversary not yet reached does not count.
func YearsElapsed(from, to Date) int {
	if to.Before(from) {
		return 0
	}
	years := to.Year() - from.Year()
	if from.AddYears(years).After(to) {
		years--
	}
	return years
}
