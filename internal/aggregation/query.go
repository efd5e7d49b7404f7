package aggregation

import (
	"time"

	"github.com/flexprice/aggbot/internal/types"
	"github.com/samber/lo"
)

// TruncationField is a calendar component a reading's timestamp is grouped by
type TruncationField string

const (
	FieldYear  TruncationField = "year"
	FieldMonth TruncationField = "month"
	FieldDay   TruncationField = "day"
	FieldHour  TruncationField = "hour"
)

const (
	// TimeField is the document field holding the reading timestamp
	TimeField = "dt"
	// ValueField is the numeric field that gets summed
	ValueField = "value"
)

// Query describes one read only aggregation: match readings with From <= dt <= To,
// group them by the truncation fields and sum ValueField per group. Stores
// render it into their own dialect.
type Query struct {
	Granularity types.Granularity
	From        time.Time
	To          time.Time
	TimeField   string
	ValueField  string
	GroupBy     []TruncationField
	// SortBy is ascending. Merging is keyed so this only makes results readable.
	SortBy []TruncationField
}

// GroupFields returns the cumulative truncation fields for g
func GroupFields(g types.Granularity) []TruncationField {
	switch g {
	case types.GranularityMonth:
		return []TruncationField{FieldYear, FieldMonth}
	case types.GranularityDay:
		return []TruncationField{FieldYear, FieldMonth, FieldDay}
	case types.GranularityHour:
		return []TruncationField{FieldYear, FieldMonth, FieldDay, FieldHour}
	default:
		return nil
	}
}

// BuildQuery returns the grouping and summation query for g over [from, to]
func BuildQuery(g types.Granularity, from, to time.Time) *Query {
	fields := GroupFields(g)
	return &Query{
		Granularity: g,
		From:        from,
		To:          to,
		TimeField:   TimeField,
		ValueField:  ValueField,
		GroupBy:     fields,
		SortBy:      append([]TruncationField(nil), fields...),
	}
}

// Has reports whether the query groups by f
func (q *Query) Has(f TruncationField) bool {
	return lo.Contains(q.GroupBy, f)
}
