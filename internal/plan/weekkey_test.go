package plan_test

import (
	"testing"
	"time"

	"github.com/mrezende/gymtotem/internal/plan"
)

func TestWeekKey(t *testing.T) {
	testCases := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "monday maps to itself",
			now:  time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
			want: "2025-06-02",
		},
		{
			name: "wednesday maps back to monday",
			now:  time.Date(2025, 6, 4, 23, 59, 0, 0, time.UTC),
			want: "2025-06-02",
		},
		{
			name: "sunday maps back six days",
			now:  time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
			want: "2025-06-02",
		},
		{
			name: "saturday crossing a month boundary",
			now:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			want: "2025-02-24",
		},
		{
			name: "monday crossing a year boundary",
			now:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			want: "2024-12-30",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := plan.WeekKey(tc.now); got != tc.want {
				t.Errorf("WeekKey(%s) = %q, want %q", tc.now.Format(time.DateOnly), got, tc.want)
			}
		})
	}
}

func TestWeekKeyStableWithinWeek(t *testing.T) {
	monday := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	want := plan.WeekKey(monday)
	for i := 1; i < 7; i++ {
		got := plan.WeekKey(monday.AddDate(0, 0, i))
		if got != want {
			t.Errorf("day %d: WeekKey = %q, want %q", i, got, want)
		}
	}
	if next := plan.WeekKey(monday.AddDate(0, 0, 7)); next == want {
		t.Errorf("next week's key should differ, got %q twice", next)
	}
}
