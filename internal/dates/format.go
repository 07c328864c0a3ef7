package dates

import "time"

// FormatMonthDisplay formats a month for display, e.g. "March 2025".
func FormatMonthDisplay(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// FormatDateDisplay formats a stored date string with the given layout,
// e.g. "Jan 2, 2006". Unparseable input is returned unchanged rather than
// failing; display code never crashes on bad data.
func FormatDateDisplay(value, layout string) string {
	t, ok := parseISODate(value)
	if !ok {
		return value
	}
	return t.Format(layout)
}
