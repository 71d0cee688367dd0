// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar day without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

var dateRX = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

// ParseDate parses "YYYY-MM-DD" and checks that it names a real day.
// Syntax, month range and day-of-month failures are reported with distinct
// DateError kinds.
func ParseDate(text string) (Date, error) {
	s := strings.TrimSpace(text)
	m := dateRX.FindStringSubmatch(s)
	if m == nil {
		return Date{}, &DateError{Kind: DateUnparsable, Text: text, Detail: "format must be YYYY-MM-DD"}
	}
	// The pattern admits only digits, so Atoi cannot fail here.
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if month < 1 || month > 12 {
		return Date{}, &DateError{Kind: DateMonthRange, Text: text, Detail: fmt.Sprintf("month %d is not between 1 and 12", month)}
	}
	if day < 1 || day > DaysIn(time.Month(month), year) {
		return Date{}, &DateError{Kind: DateDayRange, Text: text, Detail: fmt.Sprintf("day %d is not valid for month %d", day, month)}
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// IsLeap reports whether year has a February 29th.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysIn returns the number of days in month m of year.
func DaysIn(m time.Month, year int) int {
	switch m {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d was never set.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
