package util

import "time"

// MonthStart returns midnight on the first day of t's month, in t's location
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// TrailingMonths returns the first days of the n calendar months ending with
// t's month, oldest first. Stepping from day 1 keeps AddDate from overflowing
// on the 29th to 31st.
func TrailingMonths(t time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	start := MonthStart(t)
	months := make([]time.Time, n)
	for i := 0; i < n; i++ {
		months[i] = start.AddDate(0, i-(n-1), 0)
	}
	return months
}
