// utils/schedule.go
package utils

import (
	"fmt"
	"time"
)

// SlotInterval is the booking grid granularity in minutes. Every bookable
// start time falls on this grid regardless of service duration.
const SlotInterval = 30

// FormatDate renders a local wall-clock date as "YYYY-MM-DD". The components
// are read individually on purpose: converting through UTC (t.UTC(), ISO
// round-trips, etc.) silently shifts the date near midnight in non-UTC zones.
func FormatDate(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// NextDates returns the next n calendar dates including today, as
// "YYYY-MM-DD" strings derived from the local wall clock.
func NextDates(n int) []string {
	dates := make([]string, 0, n)
	today := time.Now()
	for i := 0; i < n; i++ {
		dates = append(dates, FormatDate(today.AddDate(0, 0, i)))
	}
	return dates
}

// DayOfWeek returns 1-7 (Monday=1 .. Sunday=7) for a "YYYY-MM-DD" date.
// The string is parsed as a date-only value, so the caller's local offset
// can never shift it onto a neighboring day.
func DayOfWeek(date string) (int, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if wd := int(d.Weekday()); wd != 0 {
		return wd, nil
	}
	return 7, nil
}

// GenerateTimeSlots returns "HH:MM" strings spaced intervalMinutes apart in
// [startTime, endTime). A slot equal to endTime is never produced; the
// result is empty when startTime >= endTime.
func GenerateTimeSlots(startTime, endTime string, intervalMinutes int) []string {
	start, err := TimeToMinutes(startTime)
	if err != nil {
		return nil
	}
	end, err := TimeToMinutes(endTime)
	if err != nil {
		return nil
	}

	var slots []string
	for m := start; m < end; m += intervalMinutes {
		slots = append(slots, MinutesToTime(m))
	}
	return slots
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
func TimeToMinutes(t string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(t, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	return hours*60 + minutes, nil
}

// MinutesToTime converts minutes since midnight to "HH:MM".
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
