// Package wareki converts Japanese era (元号) date strings to Gregorian dates.
//
// Only the Reiwa era is supported: the published workbooks started after the
// era change and the source never writes anything else. Callers get a typed
// error for any other shape and must not fall back silently.
package wareki

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Reiwa year 1 is 2019.
const reiwaEpochYear = 2018

const isoLayout = "2006-01-02"

var reiwaPattern = regexp.MustCompile(`^令和(\d{1,2})年(\d{1,2})月(\d{1,2})日$`)

// FormatError reports a date string that does not match the supported
// 令和N年M月D日 pattern.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("wareki: unsupported date format %q", e.Input)
}

// ToDate parses a Reiwa era date string into a UTC calendar date.
func ToDate(s string) (time.Time, error) {
	m := reiwaPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, &FormatError{Input: s}
	}

	// Digits are guaranteed by the pattern.
	eraYear, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	d := time.Date(reiwaEpochYear+eraYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (month 13, Feb 30)
	// into the following period instead of failing; a changed component
	// means the input named a date that does not exist.
	if d.Year() != reiwaEpochYear+eraYear || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, &FormatError{Input: s}
	}
	return d, nil
}

// ToISO parses a Reiwa era date string and formats it as yyyy-MM-dd,
// the canonical form stored and compared everywhere downstream.
func ToISO(s string) (string, error) {
	d, err := ToDate(s)
	if err != nil {
		return "", err
	}
	return d.Format(isoLayout), nil
}
