package services

import (
	"fmt"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used by HTML5 date inputs (YYYY-MM-DD)
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// MinYear is the earliest accepted year; year 0 does not exist in the Gregorian calendar
const MinYear = 1

// Date is a calendar date without time of day or location
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
// The second return value is false when the input cannot be used (empty,
// wrong format, out-of-range month or day); that is an ordinary outcome.
func ParseDate(dateStr string) (Date, bool) {
	return ParseDateLayout(dateStr, DateLayout)
}

// ParseDateLayout parses dateStr strictly against layout.
// Any time-of-day or zone information in the layout is discarded.
func ParseDateLayout(dateStr, layout string) (Date, bool) {
	if dateStr == "" {
		return Date{}, false
	}

	parsed, err := time.Parse(layout, dateStr)
	if err != nil {
		return Date{}, false
	}

	y, m, d := parsed.Date()
	if y < MinYear {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d}, true
}

// Time returns the date at midnight UTC
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DaysBetween returns end minus start in whole calendar days.
// Both dates are anchored at UTC midnight so no DST shift applies.
func DaysBetween(start, end Date) int {
	return int((end.Time().Unix() - start.Time().Unix()) / secondsPerDay)
}

// ComputeDelta parses both inputs and returns the signed number of days from
// start to end. ok is false when either input is unusable, in which case the
// caller should ask for the dates again.
func ComputeDelta(startText, endText string) (days int, ok bool) {
	start, ok := ParseDate(startText)
	if !ok {
		return 0, false
	}

	end, ok := ParseDate(endText)
	if !ok {
		return 0, false
	}

	return DaysBetween(start, end), true
}
