package aggregation

import (
	"testing"
	"time"

	"github.com/flexprice/aggbot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestGenerateBuckets(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		g     types.Granularity
		want  []time.Time
	}{
		{
			name:  "single bucket",
			start: date(2024, 1, 1, 10),
			end:   date(2024, 1, 1, 10),
			g:     types.GranularityHour,
			want:  []time.Time{date(2024, 1, 1, 10)},
		},
		{
			name:  "hours across midnight inclusive end",
			start: date(2024, 1, 1, 22),
			end:   date(2024, 1, 2, 1),
			g:     types.GranularityHour,
			want:  []time.Time{date(2024, 1, 1, 22), date(2024, 1, 1, 23), date(2024, 1, 2, 0), date(2024, 1, 2, 1)},
		},
		{
			name:  "days",
			start: date(2024, 1, 1, 0),
			end:   date(2024, 1, 3, 0),
			g:     types.GranularityDay,
			want:  []time.Time{date(2024, 1, 1, 0), date(2024, 1, 2, 0), date(2024, 1, 3, 0)},
		},
		{
			name:  "end inside last step is excluded",
			start: date(2024, 1, 1, 12),
			end:   date(2024, 1, 3, 6),
			g:     types.GranularityDay,
			want:  []time.Time{date(2024, 1, 1, 12), date(2024, 1, 2, 12)},
		},
		{
			name:  "months step by calendar with clamping",
			start: date(2024, 1, 31, 0),
			end:   date(2024, 3, 31, 0),
			g:     types.GranularityMonth,
			want:  []time.Time{date(2024, 1, 31, 0), date(2024, 2, 29, 0), date(2024, 3, 29, 0)},
		},
		{
			name:  "months across year",
			start: date(2022, 9, 1, 0),
			end:   date(2023, 1, 1, 0),
			g:     types.GranularityMonth,
			want:  []time.Time{date(2022, 9, 1, 0), date(2022, 10, 1, 0), date(2022, 11, 1, 0), date(2022, 12, 1, 0), date(2023, 1, 1, 0)},
		},
		{
			name:  "inverted range",
			start: date(2024, 1, 2, 0),
			end:   date(2024, 1, 1, 0),
			g:     types.GranularityDay,
			want:  []time.Time{},
		},
		{
			name:  "unsupported granularity",
			start: date(2024, 1, 1, 0),
			end:   date(2024, 1, 8, 0),
			g:     "week",
			want:  []time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateBuckets(tt.start, tt.end, tt.g)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateBuckets_StrictlyIncreasing(t *testing.T) {
	for _, g := range []types.Granularity{types.GranularityHour, types.GranularityDay, types.GranularityMonth} {
		got := GenerateBuckets(date(2023, 11, 30, 17), date(2024, 4, 1, 0), g)
		require.NotEmpty(t, got, g.String())
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].After(got[i-1]), "%s: %v not after %v", g, got[i], got[i-1])
		}
		assert.Equal(t, got, GenerateBuckets(date(2023, 11, 30, 17), date(2024, 4, 1, 0), g))
	}
}
