// Package calendar provides the date arithmetic the trend fit relies on:
// day ordinals and Monday-Friday business days. Market holidays are not
// modelled.
package calendar

import "time"

// unixEpochOrdinal is the ordinal of 1970-01-01 when 0001-01-01 is day 1
const unixEpochOrdinal = 719163

const secondsPerDay = 24 * 60 * 60

// Day truncates t to its calendar date at UTC midnight.
// The wall-clock date in t's own location is kept.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Ordinal returns the proleptic Gregorian day number of t's date,
// counting 0001-01-01 as 1.
func Ordinal(t time.Time) int64 {
	return Day(t).Unix()/secondsPerDay + unixEpochOrdinal
}

// FromOrdinal is the inverse of Ordinal
func FromOrdinal(ordinal int64) time.Time {
	return time.Unix((ordinal-unixEpochOrdinal)*secondsPerDay, 0).UTC()
}

// IsBusinessDay reports whether t falls on Monday through Friday
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// CountBusinessDays counts the business days strictly after from and up to
// and including to. It returns 0 when to is not after from.
func CountBusinessDays(from, to time.Time) int {
	start := Ordinal(from) + 1
	end := Ordinal(to)
	if end < start {
		return 0
	}

	total := end - start + 1
	count := (total / 7) * 5

	// Walk the partial week that remains
	day := FromOrdinal(start + (total/7)*7)
	for i := int64(0); i < total%7; i++ {
		if IsBusinessDay(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return int(count)
}

// NextBusinessDays returns n consecutive business days starting the day
// after from, in increasing order.
func NextBusinessDays(from time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	days := make([]time.Time, 0, n)
	day := Day(from)
	for len(days) < n {
		day = day.AddDate(0, 0, 1)
		if IsBusinessDay(day) {
			days = append(days, day)
		}
	}
	return days
}
