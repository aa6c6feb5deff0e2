package planner

import (
	"errors"
	"fmt"
)

// MinutesPerDay is the length of a calendar day in minutes.
const MinutesPerDay = 24 * 60

var ErrInvalidTimeFormat = errors.New("invalid time format")

// ParseClock converts a zero-padded "HH:MM" string to minutes since
// midnight. Malformed input yields 0, which is indistinguishable from
// midnight; use ParseClockStrict when the difference matters.
func ParseClock(s string) int {
	m, err := ParseClockStrict(s)
	if err != nil {
		return 0
	}
	return m
}

// ParseClockStrict is ParseClock with an error for malformed input.
func ParseClockStrict(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("parse %q: %w", s, ErrInvalidTimeFormat)
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("parse %q: %w", s, ErrInvalidTimeFormat)
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FormatClock renders minutes as "HH:MM". Values outside a day are not
// wrapped: 1500 prints as "25:00" and -1 as "-1:59".
func FormatClock(minutes int) string {
	h := floorDiv(minutes, 60)
	m := minutes - h*60
	return fmt.Sprintf("%02d:%02d", h, m)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
