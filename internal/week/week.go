// Package week derives ISO-8601 week bucket keys ("2025-W01") used to group
// case files for weekly payroll and statistics.
package week

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrInvalidKey = errors.New("invalid week key, expected YYYY-Www")

// Key returns the ISO week bucket of t, normalized to UTC. Weeks start on
// Monday and week 1 holds the year's first Thursday, so late December can
// land in week 1 of the next year and early January in week 52/53.
func Key(t time.Time) string {
	year, w := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, w)
}

// Parse splits a key into ISO year and week, rejecting weeks the year lacks.
func Parse(key string) (int, int, error) {
	if len(key) != 8 || key[4] != '-' || key[5] != 'W' || !digits(key[:4]) || !digits(key[6:]) {
		return 0, 0, ErrInvalidKey
	}

	year, err := strconv.Atoi(key[:4])
	if err != nil || year < 1 {
		return 0, 0, ErrInvalidKey
	}
	w, err := strconv.Atoi(key[6:])
	if err != nil || w < 1 || w > WeeksInYear(year) {
		return 0, 0, ErrInvalidKey
	}

	return year, w, nil
}

func Validate(key string) error {
	_, _, err := Parse(key)
	return err
}

// WeeksInYear returns 52 or 53. December 28 always falls in the last ISO week.
func WeeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// Start returns Monday 00:00 UTC of the keyed week.
func Start(key string) (time.Time, error) {
	year, w, err := Parse(key)
	if err != nil {
		return time.Time{}, err
	}

	// January 4 is always in week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset)

	return monday.AddDate(0, 0, (w-1)*7), nil
}

// Bounds returns [start, end) of the keyed week.
func Bounds(key string) (time.Time, time.Time, error) {
	start, err := Start(key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 7), nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
