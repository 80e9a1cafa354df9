package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/monitor/internal/application/analytics/dto"
	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/biztime"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// GetPredictionQuery selects the series to forecast.
type GetPredictionQuery struct {
	Scope       Scope
	Granularity string
	Metric      string
}

// GetPredictionUseCase projects a series forward, blending its local trend
// with the external search-interest trend.
type GetPredictionUseCase struct {
	repo       analytics.RecordRepository
	trends     TrendProvider
	searchTerm string
	horizon    int
	logger     logger.Interface
	now        func() time.Time
}

// NewGetPredictionUseCase creates a new GetPredictionUseCase
func NewGetPredictionUseCase(
	repo analytics.RecordRepository,
	trends TrendProvider,
	searchTerm string,
	logger logger.Interface,
) *GetPredictionUseCase {
	return &GetPredictionUseCase{
		repo:       repo,
		trends:     trends,
		searchTerm: searchTerm,
		horizon:    analytics.DefaultForecastHorizon,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

// Execute forecasts the next periods of the series identified by the query.
func (uc *GetPredictionUseCase) Execute(ctx context.Context, query GetPredictionQuery) (*dto.PredictionResponse, error) {
	key, err := analytics.ParseSeriesKey(query.Granularity, query.Metric, query.Scope.Metrics())
	if err != nil {
		uc.logger.Warnw("rejected prediction query",
			"granularity", query.Granularity,
			"metric", query.Metric,
			"owner_id", query.Scope.OwnerID,
			"error", err,
		)
		return nil, toAppError(err, "")
	}

	now := uc.now()
	series, err := buildSeries(ctx, uc.repo, query.Scope, key, now)
	if err != nil {
		uc.logger.Errorw("failed to build series for prediction", "key", key.String(), "error", err)
		return nil, toAppError(err, "failed to build series")
	}

	// check the local series before paying for an upstream call
	if _, err := analytics.ShortWindowTrend(analytics.BucketValues(series)); err != nil {
		return nil, toAppError(err, "")
	}

	window := analytics.WindowFor(key.Granularity)
	points, err := uc.trends.FetchInterestSeries(ctx, uc.searchTerm, window)
	if err != nil {
		uc.logger.Errorw("failed to fetch interest series",
			"term", uc.searchTerm,
			"window", window,
			"error", err,
		)
		return nil, toAppError(err, "failed to fetch interest series")
	}

	trend, err := analytics.DeriveTrend(window, analytics.InterestValues(points))
	if err != nil {
		uc.logger.Warnw("interest series too short", "window", window, "points", len(points))
		return nil, toAppError(err, "")
	}

	predictions, err := analytics.Project(series, trend, key.Granularity, now, uc.horizon)
	if err != nil {
		return nil, toAppError(err, "failed to project series")
	}

	uc.logger.Debugw("series projected",
		"key", key.String(),
		"window", window,
		"trend_slope", trend.Slope,
		"trend_intercept", trend.Intercept,
	)

	return &dto.PredictionResponse{
		Granularity: key.Granularity.String(),
		Metric:      key.Metric.String(),
		Trend: dto.TrendDTO{
			Window:    window.String(),
			Slope:     trend.Slope,
			Intercept: trend.Intercept,
		},
		Predictions: dto.ToPredictionPoints(predictions),
	}, nil
}
