package usecases

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/biztime"
	"github.com/orris-inc/monitor/internal/shared/errors"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

func interestPoints(values ...int) []analytics.InterestPoint {
	points := make([]analytics.InterestPoint, len(values))
	for i, v := range values {
		points[i] = analytics.InterestPoint{Index: i, Value: v}
	}
	return points
}

func TestGetPredictionUseCase_Execute(t *testing.T) {
	biztime.MustInit("UTC")

	t.Run("month forecast uses the long window", func(t *testing.T) {
		repo := new(mockRecordRepository)
		repo.On("ListPayments", mock.Anything, analytics.RecordFilter{}).Return([]analytics.Payment{
			{OfferID: "o1", Amount: decimal.NewFromInt(1), Timestamp: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)},
		}, nil)
		trends := new(mockTrendProvider)
		// segment means 2, 4, 6: slope 2, intercept (2 + (4 - 2)) / 2 = 2
		trends.On("FetchInterestSeries", mock.Anything, "Aveiro", analytics.LongWindow).
			Return(interestPoints(1, 3, 3, 5, 6, 6), nil)

		uc := NewGetPredictionUseCase(repo, trends, "Aveiro", logger.NewNopLogger())
		uc.now = fixedClock

		resp, err := uc.Execute(context.Background(), GetPredictionQuery{Granularity: "month", Metric: "num_payments"})
		require.NoError(t, err)

		assert.Equal(t, "long", resp.Trend.Window)
		assert.InDelta(t, 2.0, resp.Trend.Slope, 1e-9)
		assert.InDelta(t, 2.0, resp.Trend.Intercept, 1e-9)

		// local series ends 0, 0, 1: slope 0.5, intercept (0 + (0 - 1)) / 2 = -0.5
		require.Len(t, resp.Predictions, 3)
		labels := []string{"06/2024", "07/2024", "08/2024"}
		for k, p := range resp.Predictions {
			i := float64(3 + k)
			expected := 0.5*i - 0.5 + math.Log(2*i+2)
			assert.Equal(t, labels[k], p.Label)
			assert.InDelta(t, expected, p.Value, 1e-9)
		}
		trends.AssertExpectations(t)
	})

	t.Run("day forecast uses the short window", func(t *testing.T) {
		repo := new(mockRecordRepository)
		repo.On("ListPayments", mock.Anything, analytics.RecordFilter{OwnerID: "alice"}).Return([]analytics.Payment{}, nil)
		trends := new(mockTrendProvider)
		trends.On("FetchInterestSeries", mock.Anything, "Aveiro", analytics.ShortWindow).
			Return(interestPoints(10, 20, 30), nil)

		uc := NewGetPredictionUseCase(repo, trends, "Aveiro", logger.NewNopLogger())
		uc.now = fixedClock

		resp, err := uc.Execute(context.Background(), GetPredictionQuery{Scope: OwnerScope("alice"), Granularity: "day", Metric: "profit"})
		require.NoError(t, err)
		assert.Equal(t, "short", resp.Trend.Window)
		assert.Equal(t, "16/05/2024", resp.Predictions[0].Label)
		trends.AssertExpectations(t)
	})

	t.Run("trend provider failure is an external service error", func(t *testing.T) {
		repo := new(mockRecordRepository)
		repo.On("ListPayments", mock.Anything, mock.Anything).Return([]analytics.Payment{}, nil)
		trends := new(mockTrendProvider)
		trends.On("FetchInterestSeries", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: timeout", analytics.ErrExternalService))

		uc := NewGetPredictionUseCase(repo, trends, "Aveiro", logger.NewNopLogger())
		uc.now = fixedClock

		_, err := uc.Execute(context.Background(), GetPredictionQuery{Granularity: "hour", Metric: "profit"})
		assert.True(t, errors.IsExternalServiceError(err))
	})

	t.Run("short interest series is insufficient data", func(t *testing.T) {
		repo := new(mockRecordRepository)
		repo.On("ListPayments", mock.Anything, mock.Anything).Return([]analytics.Payment{}, nil)
		trends := new(mockTrendProvider)
		trends.On("FetchInterestSeries", mock.Anything, mock.Anything, mock.Anything).
			Return(interestPoints(4, 5), nil)

		uc := NewGetPredictionUseCase(repo, trends, "Aveiro", logger.NewNopLogger())
		uc.now = fixedClock

		_, err := uc.Execute(context.Background(), GetPredictionQuery{Granularity: "day", Metric: "num_payments"})
		assert.True(t, errors.IsInsufficientDataError(err))
	})

	t.Run("invalid key never calls the provider", func(t *testing.T) {
		repo := new(mockRecordRepository)
		trends := new(mockTrendProvider)

		uc := NewGetPredictionUseCase(repo, trends, "Aveiro", logger.NewNopLogger())
		_, err := uc.Execute(context.Background(), GetPredictionQuery{Granularity: "year", Metric: "profit"})
		assert.True(t, errors.IsBadRequestError(err))
		trends.AssertNotCalled(t, "FetchInterestSeries", mock.Anything, mock.Anything, mock.Anything)
	})
}
