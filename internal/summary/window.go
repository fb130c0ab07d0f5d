package summary

import "time"

// Period identifies a reporting window anchored at a wall-clock boundary.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Periods returns all periods in fixed display order.
func Periods() []Period {
	return []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}
}

// Title returns the human-readable section title for the period.
func (p Period) Title() string {
	switch p {
	case PeriodDay:
		return "Today"
	case PeriodWeek:
		return "Week"
	case PeriodMonth:
		return "Month"
	case PeriodYear:
		return "Year"
	}
	return string(p)
}

// WindowStart returns the inclusive start of the half-open query window
// [start, now) for the period, in now's location. Weeks start on Monday.
func WindowStart(p Period, now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	switch p {
	case PeriodWeek:
		offset := (int(now.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
		monday := now.AddDate(0, 0, -offset)
		y, m, d = monday.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case PeriodYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default: // PeriodDay
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}
