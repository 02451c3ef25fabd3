package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMonthKey is returned when a month key string is malformed.
var ErrInvalidMonthKey = errors.New("invalid month key, want MM-yyyy")

// MonthKey identifies a calendar-month bucket in canonical "MM-yyyy" form
// (zero-padded month, four-digit year). It is the only time-bucketing
// granularity used for aggregation: two records belong to the same bucket
// iff their MonthKeys are equal.
type MonthKey string

// MonthKeyOf derives the bucket for a point in time.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(fmt.Sprintf("%02d-%04d", int(t.Month()), t.Year()))
}

// ParseMonthKey validates and normalizes an "MM-yyyy" string.
func ParseMonthKey(s string) (MonthKey, error) {
	var month, year int
	if _, err := fmt.Sscanf(s, "%2d-%4d", &month, &year); err != nil {
		return "", ErrInvalidMonthKey
	}
	if month < 1 || month > 12 || year < 1 || len(s) != 7 {
		return "", ErrInvalidMonthKey
	}
	return MonthKey(fmt.Sprintf("%02d-%04d", month, year)), nil
}

// Time returns midnight UTC on the first day of the month.
func (mk MonthKey) Time() time.Time {
	var month, year int
	fmt.Sscanf(string(mk), "%2d-%4d", &month, &year)
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths walks the key by whole calendar months; n may be negative.
// Year boundaries roll correctly ("01-2025".AddMonths(-1) == "12-2024").
func (mk MonthKey) AddMonths(n int) MonthKey {
	return MonthKeyOf(mk.Time().AddDate(0, n, 0))
}

// Next returns the first instant of the following month, useful as an
// exclusive upper bound for date-range queries covering this bucket.
func (mk MonthKey) Next() time.Time {
	return mk.Time().AddDate(0, 1, 0)
}

func (mk MonthKey) String() string {
	return string(mk)
}
