package utils

import (
	"fmt"
	"time"
)

const layoutDate = "2006-01-02"

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// EncodeDateInt packs the calendar date of t into YYYYMMDD, the legacy
// Client_Trip storage format.
func EncodeDateInt(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// DecodeDateInt is the inverse of EncodeDateInt. Values that do not name a
// real calendar date are rejected instead of being normalized.
func DecodeDateInt(v int) (time.Time, error) {
	year := v / 10000
	month := (v % 10000) / 100
	day := v % 100

	if v <= 0 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, fmt.Errorf("invalid date value %d", v)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("invalid date value %d", v)
	}
	return t, nil
}
