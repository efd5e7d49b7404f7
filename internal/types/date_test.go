package types

import (
	"testing"
	"time"
)

var (
	ist = time.FixedZone("IST", 5*60*60+30*60)
	pst = time.FixedZone("PST", -8*60*60)
)

func TestAddClampedDate(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		years  int
		months int
		days   int
		want   time.Time
	}{
		{
			name:  "simple one day",
			start: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			days:  1,
			want:  time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "day crosses month boundary",
			start: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			days:  1,
			want:  time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "day crosses year boundary",
			start: time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC),
			days:  1,
			want:  time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "leap day",
			start: time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
			days:  1,
			want:  time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "month end clamps in leap year",
			start:  time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "month end clamps in non leap year",
			start:  time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "thirty first to thirtieth",
			start:  time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "cross year with month end",
			start:  time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			months: 2,
			want:   time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "negative months",
			start:  time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			months: -1,
			want:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "leap year to non leap year",
			start: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			years: 1,
			want:  time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "keeps clock and location",
			start:  time.Date(2024, time.January, 31, 15, 45, 30, 0, pst),
			months: 1,
			want:   time.Date(2024, time.February, 29, 15, 45, 30, 0, pst),
		},
		{
			name:   "fixed zone month end",
			start:  time.Date(2024, time.May, 31, 22, 30, 0, 0, ist),
			months: 1,
			want:   time.Date(2024, time.June, 30, 22, 30, 0, 0, ist),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddClampedDate(tt.start, tt.years, tt.months, tt.days)
			if !got.Equal(tt.want) {
				t.Errorf("AddClampedDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month, time.UTC); got != tt.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
