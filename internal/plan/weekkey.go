package plan

import "time"

// WeekKey returns the Monday of the week containing now, formatted as an
// ISO date. Plans and workout history are keyed by it, so a plan generated
// any day of the week stays stable until the next Monday.
func WeekKey(now time.Time) string {
	offset := int(time.Monday - now.Weekday())
	if offset > 0 {
		offset = -6
	}
	return now.AddDate(0, 0, offset).Format(time.DateOnly)
}
