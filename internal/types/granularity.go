package types

import (
	"time"

	ierr "github.com/flexprice/aggbot/internal/errors"
)

// Granularity is the width of a single aggregation bucket
type Granularity string

const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// TimestampLayout is the only accepted wire format for request and label timestamps
const TimestampLayout = "2006-01-02T15:04:05"

func (g Granularity) String() string {
	return string(g)
}

// Validate reports ErrNoResult for anything outside hour/day/month. An
// unsupported group_type is not a malformed request, the caller simply asked
// for an aggregation that has no pipeline.
func (g Granularity) Validate() error {
	switch g {
	case GranularityHour, GranularityDay, GranularityMonth:
		return nil
	default:
		return ierr.NewError("unsupported group type").
			WithHintf("Unsupported group_type %q, expected one of hour, day, month", string(g)).
			WithReportableDetails(
				map[string]any{
					"group_type": g,
				},
			).
			Mark(ierr.ErrNoResult)
	}
}

// Next advances t by exactly one unit of the granularity. Months use clamped
// calendar arithmetic so Jan 31 steps to the last day of February.
func (g Granularity) Next(t time.Time) time.Time {
	switch g {
	case GranularityHour:
		return t.Add(time.Hour)
	case GranularityDay:
		return AddClampedDate(t, 0, 0, 1)
	case GranularityMonth:
		return AddClampedDate(t, 0, 1, 0)
	default:
		return t
	}
}

// Truncate drops everything finer than the granularity
func (g Granularity) Truncate(t time.Time) time.Time {
	switch g {
	case GranularityHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case GranularityDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

// ParseTimestamp parses a request timestamp in TimestampLayout as UTC
func ParseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err == nil && t.Format(TimestampLayout) != value {
		// time.Parse tolerates fractional seconds and single digit hours
		err = ierr.NewError("timestamp is not in canonical form").Error()
	}
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("%s must be formatted as YYYY-MM-DDTHH:MM:SS", field).
			WithReportableDetails(map[string]any{
				field: value,
			}).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

// FormatTimestamp renders t in TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
