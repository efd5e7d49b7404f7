package mongo

import (
	"context"

	"github.com/flexprice/aggbot/internal/aggregation"
	"github.com/flexprice/aggbot/internal/domain/reading"
	ierr "github.com/flexprice/aggbot/internal/errors"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/flexprice/aggbot/internal/mongo"
	"github.com/flexprice/aggbot/internal/sentry"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
)

// operators maps each truncation field to the date operator extracting it
var operators = map[aggregation.TruncationField]string{
	aggregation.FieldYear:  "$year",
	aggregation.FieldMonth: "$month",
	aggregation.FieldDay:   "$dayOfMonth",
	aggregation.FieldHour:  "$hour",
}

const totalField = "totalValue"

type ReadingRepository struct {
	client *mongo.Client
	sentry *sentry.Service
	logger *logger.Logger
}

func NewReadingRepository(client *mongo.Client, sentryService *sentry.Service, logger *logger.Logger) reading.Repository {
	return &ReadingRepository{client: client, sentry: sentryService, logger: logger}
}

// bucketRow is one $group output document
type bucketRow struct {
	ID struct {
		Year  int `bson:"year"`
		Month int `bson:"month"`
		Day   int `bson:"day"`
		Hour  int `bson:"hour"`
	} `bson:"_id"`
	TotalValue float64 `bson:"totalValue"`
}

func (r *ReadingRepository) AggregateBuckets(ctx context.Context, query *aggregation.Query) ([]*aggregation.BucketTotal, error) {
	span, ctx := r.sentry.StartDBSpan(ctx, "db.mongo", "repository.reading.aggregate", map[string]interface{}{
		"group_type": query.Granularity,
		"from":       query.From,
		"to":         query.To,
	})

	totals, err := r.aggregate(ctx, query)
	sentry.FinishSpan(span, err)
	return totals, err
}

func (r *ReadingRepository) aggregate(ctx context.Context, query *aggregation.Query) ([]*aggregation.BucketTotal, error) {
	cursor, err := r.client.Collection().Aggregate(ctx, buildPipeline(query))
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("aggregate %s readings", query.Granularity).
			WithHint("Failed to aggregate readings").
			WithReportableDetails(map[string]interface{}{
				"group_type": query.Granularity,
			}).
			Mark(ierr.ErrDatabase)
	}

	totals, err := decodeRows(ctx, cursor, query)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("decode bucket rows").
			WithHint("Failed to read aggregated readings").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Debugw("aggregated readings",
		"group_type", query.Granularity,
		"rows", len(totals),
	)
	return totals, nil
}

// buildPipeline renders the query as $match, $group and $sort stages
func buildPipeline(query *aggregation.Query) mongodriver.Pipeline {
	timeRef := "$" + query.TimeField

	groupID := bson.D{}
	for _, f := range query.GroupBy {
		groupID = append(groupID, bson.E{Key: string(f), Value: bson.D{{Key: operators[f], Value: timeRef}}})
	}

	sort := bson.D{}
	for _, f := range query.SortBy {
		sort = append(sort, bson.E{Key: "_id." + string(f), Value: 1})
	}

	return mongodriver.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: query.TimeField, Value: bson.D{
				{Key: "$gte", Value: query.From},
				{Key: "$lte", Value: query.To},
			}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: groupID},
			{Key: totalField, Value: bson.D{{Key: "$sum", Value: "$" + query.ValueField}}},
		}}},
		{{Key: "$sort", Value: sort}},
	}
}

func decodeRows(ctx context.Context, cursor *mongodriver.Cursor, query *aggregation.Query) ([]*aggregation.BucketTotal, error) {
	defer cursor.Close(ctx)

	var rows []bucketRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	totals := make([]*aggregation.BucketTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, &aggregation.BucketTotal{
			Key:   aggregation.NewBucketKey(query.Granularity, row.ID.Year, row.ID.Month, row.ID.Day, row.ID.Hour),
			Total: row.TotalValue,
		})
	}
	return totals, nil
}
