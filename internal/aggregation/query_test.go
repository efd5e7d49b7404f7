package aggregation

import (
	"testing"

	"github.com/flexprice/aggbot/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	from := date(2024, 1, 1, 0)
	to := date(2024, 2, 1, 0)

	tests := []struct {
		g    types.Granularity
		want []TruncationField
	}{
		{types.GranularityMonth, []TruncationField{FieldYear, FieldMonth}},
		{types.GranularityDay, []TruncationField{FieldYear, FieldMonth, FieldDay}},
		{types.GranularityHour, []TruncationField{FieldYear, FieldMonth, FieldDay, FieldHour}},
	}

	for _, tt := range tests {
		t.Run(tt.g.String(), func(t *testing.T) {
			q := BuildQuery(tt.g, from, to)
			assert.Equal(t, tt.g, q.Granularity)
			assert.Equal(t, from, q.From)
			assert.Equal(t, to, q.To)
			assert.Equal(t, "dt", q.TimeField)
			assert.Equal(t, "value", q.ValueField)
			assert.Equal(t, tt.want, q.GroupBy)
			assert.Equal(t, tt.want, q.SortBy)
		})
	}
}

func TestQuery_Has(t *testing.T) {
	q := BuildQuery(types.GranularityDay, date(2024, 1, 1, 0), date(2024, 1, 2, 0))
	assert.True(t, q.Has(FieldDay))
	assert.False(t, q.Has(FieldHour))

	// sort fields are an independent copy
	q.SortBy[0] = FieldHour
	assert.Equal(t, FieldYear, q.GroupBy[0])
}
