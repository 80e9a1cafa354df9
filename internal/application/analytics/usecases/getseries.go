package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/monitor/internal/application/analytics/dto"
	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/biztime"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// GetSeriesQuery selects a bucketed series by granularity and metric.
type GetSeriesQuery struct {
	Scope       Scope
	Granularity string
	Metric      string
}

// GetSeriesUseCase computes a gap-filled bucketed series.
type GetSeriesUseCase struct {
	repo   analytics.RecordRepository
	logger logger.Interface
	now    func() time.Time
}

// NewGetSeriesUseCase creates a new GetSeriesUseCase
func NewGetSeriesUseCase(repo analytics.RecordRepository, logger logger.Interface) *GetSeriesUseCase {
	return &GetSeriesUseCase{
		repo:   repo,
		logger: logger,
		now:    biztime.NowUTC,
	}
}

// Execute builds the series identified by the query.
func (uc *GetSeriesUseCase) Execute(ctx context.Context, query GetSeriesQuery) (*dto.SeriesResponse, error) {
	key, err := analytics.ParseSeriesKey(query.Granularity, query.Metric, query.Scope.Metrics())
	if err != nil {
		uc.logger.Warnw("rejected series query",
			"granularity", query.Granularity,
			"metric", query.Metric,
			"owner_id", query.Scope.OwnerID,
			"error", err,
		)
		return nil, toAppError(err, "")
	}

	buckets, err := buildSeries(ctx, uc.repo, query.Scope, key, uc.now())
	if err != nil {
		uc.logger.Errorw("failed to build series", "key", key.String(), "error", err)
		return nil, toAppError(err, "failed to build series")
	}

	return &dto.SeriesResponse{
		Granularity: key.Granularity.String(),
		Metric:      key.Metric.String(),
		Buckets:     dto.ToSeriesPoints(buckets),
	}, nil
}

func buildSeries(ctx context.Context, repo analytics.RecordRepository, scope Scope, key analytics.SeriesKey, now time.Time) ([]analytics.Bucket, error) {
	snapshot, err := loadSnapshot(ctx, repo, scope, recordNeeds{
		offers:   key.NeedsOffers(),
		payments: !key.NeedsOffers(),
	})
	if err != nil {
		return nil, err
	}
	return analytics.BuildSeries(key, snapshot, now)
}
