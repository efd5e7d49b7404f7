package clickhouse

import (
	"testing"
	"time"

	"github.com/flexprice/aggbot/internal/aggregation"
	"github.com/flexprice/aggbot/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBuildBucketQuery(t *testing.T) {
	from := time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2022, 11, 30, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name        string
		granularity types.Granularity
		want        string
	}{
		{
			name:        "month",
			granularity: types.GranularityMonth,
			want: "SELECT toYear(dt) AS year, toMonth(dt) AS month, toUInt8(1) AS day, toUInt8(0) AS hour, " +
				"toFloat64(sum(value)) AS total FROM readings WHERE dt >= ? AND dt <= ? " +
				"GROUP BY year, month ORDER BY year ASC, month ASC",
		},
		{
			name:        "day",
			granularity: types.GranularityDay,
			want: "SELECT toYear(dt) AS year, toMonth(dt) AS month, toDayOfMonth(dt) AS day, toUInt8(0) AS hour, " +
				"toFloat64(sum(value)) AS total FROM readings WHERE dt >= ? AND dt <= ? " +
				"GROUP BY year, month, day ORDER BY year ASC, month ASC, day ASC",
		},
		{
			name:        "hour",
			granularity: types.GranularityHour,
			want: "SELECT toYear(dt) AS year, toMonth(dt) AS month, toDayOfMonth(dt) AS day, toHour(dt) AS hour, " +
				"toFloat64(sum(value)) AS total FROM readings WHERE dt >= ? AND dt <= ? " +
				"GROUP BY year, month, day, hour ORDER BY year ASC, month ASC, day ASC, hour ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildBucketQuery("readings", aggregation.BuildQuery(tt.granularity, from, to))
			assert.Equal(t, tt.want, sql)
			assert.Equal(t, []any{from, to}, args)
		})
	}
}
