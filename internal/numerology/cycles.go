package numerology

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate reports a date string that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")

const dateLayout = "2006-01-02"

// Date is a calendar date used by the cycle calculations.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses a strict YYYY-MM-DD string. Anything else, including
// out-of-range months or days, fails with a wrapped ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// String renders the date back as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// LifePath computes the life path number from a birthdate: the sum of
// all eight date digits reduced with the master-number stop.
func LifePath(birth Date) int {
	total := digitSum(birth.Year) + digitSum(birth.Month) + digitSum(birth.Day)
	return Reduce(total)
}

// UniversalYear reduces the digits of a calendar year to 1-9.
func UniversalYear(year int) int {
	return PlainReduce(digitSum(year))
}

// UniversalMonth folds the month into the universal year.
func UniversalMonth(year, month int) int {
	return PlainReduce(UniversalYear(year) + month)
}

// UniversalDay folds the day into the universal month.
func UniversalDay(year, month, day int) int {
	return PlainReduce(UniversalMonth(year, month) + day)
}

// PersonalYear computes an athlete's personal year for a calendar year:
// birth month + birth day + the year's digit sum, reduced once to 1-9.
func PersonalYear(birth Date, year int) int {
	return PlainReduce(birth.Month + birth.Day + digitSum(year))
}

// PersonalDay folds a target date into the athlete's personal year for
// that date's calendar year.
func PersonalDay(birth Date, target Date) int {
	return PlainReduce(PersonalYear(birth, target.Year) + target.Month + target.Day)
}
