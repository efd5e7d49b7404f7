package clickhouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/flexprice/aggbot/internal/aggregation"
	"github.com/flexprice/aggbot/internal/clickhouse"
	"github.com/flexprice/aggbot/internal/domain/reading"
	ierr "github.com/flexprice/aggbot/internal/errors"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/samber/lo"
)

// columnExprs maps each truncation field to the ClickHouse expression
// computing it. Every result column is UInt8 except year (UInt16).
var columnExprs = map[aggregation.TruncationField]string{
	aggregation.FieldYear:  "toYear(%s)",
	aggregation.FieldMonth: "toMonth(%s)",
	aggregation.FieldDay:   "toDayOfMonth(%s)",
	aggregation.FieldHour:  "toHour(%s)",
}

// constants selected for fields the granularity does not group by
var columnDefaults = map[aggregation.TruncationField]string{
	aggregation.FieldMonth: "toUInt8(1)",
	aggregation.FieldDay:   "toUInt8(1)",
	aggregation.FieldHour:  "toUInt8(0)",
}

var allFields = []aggregation.TruncationField{
	aggregation.FieldYear,
	aggregation.FieldMonth,
	aggregation.FieldDay,
	aggregation.FieldHour,
}

type ReadingRepository struct {
	store  *clickhouse.ClickHouseStore
	logger *logger.Logger
}

func NewReadingRepository(store *clickhouse.ClickHouseStore, logger *logger.Logger) reading.Repository {
	return &ReadingRepository{store: store, logger: logger}
}

func (r *ReadingRepository) AggregateBuckets(ctx context.Context, query *aggregation.Query) ([]*aggregation.BucketTotal, error) {
	sql, args := buildBucketQuery(r.store.Table(), query)

	r.logger.Debugw("executing readings aggregation",
		"group_type", query.Granularity,
		"from", query.From,
		"to", query.To,
	)

	rows, err := r.store.GetConn().Query(ctx, sql, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("query %s readings", query.Granularity).
			WithHint("Failed to aggregate readings").
			WithReportableDetails(map[string]interface{}{
				"group_type": query.Granularity,
			}).
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var totals []*aggregation.BucketTotal
	for rows.Next() {
		var (
			year             uint16
			month, day, hour uint8
			total            float64
		)
		if err := rows.Scan(&year, &month, &day, &hour, &total); err != nil {
			return nil, ierr.WithError(err).
				WithMessage("scan bucket row").
				WithHint("Failed to read aggregated readings").
				Mark(ierr.ErrDatabase)
		}
		totals = append(totals, &aggregation.BucketTotal{
			Key:   aggregation.NewBucketKey(query.Granularity, int(year), int(month), int(day), int(hour)),
			Total: total,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read aggregated readings").
			Mark(ierr.ErrDatabase)
	}

	return totals, nil
}

// buildBucketQuery renders the query as ClickHouse SQL. The select list is
// always year, month, day, hour, total so rows scan the same way at every
// granularity.
func buildBucketQuery(table string, query *aggregation.Query) (string, []any) {
	selects := lo.Map(allFields, func(f aggregation.TruncationField, _ int) string {
		if query.Has(f) {
			return fmt.Sprintf(columnExprs[f]+" AS %s", query.TimeField, f)
		}
		return fmt.Sprintf("%s AS %s", columnDefaults[f], f)
	})

	toNames := func(f aggregation.TruncationField, _ int) string { return string(f) }

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s, toFloat64(sum(%s)) AS total", strings.Join(selects, ", "), query.ValueField)
	fmt.Fprintf(&b, " FROM %s", table)
	fmt.Fprintf(&b, " WHERE %s >= ? AND %s <= ?", query.TimeField, query.TimeField)
	fmt.Fprintf(&b, " GROUP BY %s", strings.Join(lo.Map(query.GroupBy, toNames), ", "))
	fmt.Fprintf(&b, " ORDER BY %s", strings.Join(lo.Map(query.SortBy, func(f aggregation.TruncationField, i int) string {
		return toNames(f, i) + " ASC"
	}), ", "))

	return b.String(), []any{query.From, query.To}
}
