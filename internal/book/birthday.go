package book

import (
	"fmt"
	"time"

	"github.com/tartampluch/birthday-assistant/internal/config"
)

// Birthday is a calendar date entered as DD.MM.YYYY.
type Birthday struct {
	date time.Time // UTC midnight
}

// ParseBirthday parses raw strictly against DD.MM.YYYY.
// Impossible dates (31.06, 30.02, 29.02 of a non-leap year) are rejected.
func ParseBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatBirthday, raw)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, raw)
	}
	return Birthday{date: t}, nil
}

// BirthdayFromDate keeps only the calendar part of t.
func BirthdayFromDate(t time.Time) Birthday {
	return Birthday{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Date returns the birth date at UTC midnight.
func (b Birthday) Date() time.Time {
	return b.date
}

// String renders the date back as DD.MM.YYYY.
func (b Birthday) String() string {
	return b.date.Format(config.DateFormatBirthday)
}

// NextOnOrAfter returns the first anniversary of the birthday that falls on
// or after the calendar date of ref. The result is at UTC midnight.
//
// Feb 29 birthdays land on March 1 in non-leap years, which is how
// time.Date normalizes the out-of-range day.
func (b Birthday) NextOnOrAfter(ref time.Time) time.Time {
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	candidate := time.Date(today.Year(), b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return candidate
}
