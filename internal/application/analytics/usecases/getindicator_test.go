package usecases

import (
	"context"
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

func indicatorFixture() ([]analytics.Offer, []analytics.Payment) {
	offers := []analytics.Offer{
		{ID: "o1", OwnerID: "alice", Tags: []string{"beach"}, CreatedAt: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "o2", OwnerID: "bob", Tags: []string{"museum"}, CreatedAt: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "o3", OwnerID: "alice", Tags: []string{"hiking"}, CreatedAt: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
		// a later version does not make o1 new again
		{ID: "o1", OwnerID: "alice", Tags: []string{"beach", "surf"}, CreatedAt: time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)},
	}
	payments := []analytics.Payment{
		{OfferID: "o1", Amount: decimal.RequireFromString("12.50"), Timestamp: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
		{OfferID: "o1", Amount: decimal.RequireFromString("7.25"), Timestamp: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		{OfferID: "o2", Amount: decimal.RequireFromString("30.00"), Timestamp: time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)},
		// after the same point of the previous month
		{OfferID: "o2", Amount: decimal.RequireFromString("99.00"), Timestamp: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)},
	}
	return offers, payments
}

func TestGetIndicatorUseCase_Execute(t *testing.T) {
	biztime.MustInit("UTC")
	offers, payments := indicatorFixture()

	tests := []struct {
		indicator Indicator
		kind      string
		expected  string
	}{
		{IndicatorProfitThisMonth, "amount", "37.25"},
		{IndicatorProfitVsPreviousMonth, "amount", "24.75"},
		{IndicatorSalesThisMonth, "count", "2"},
		{IndicatorSalesVsPreviousMonth, "count", "1"},
		{IndicatorTotalOffers, "count", "3"},
		{IndicatorTotalOffersVs30DaysAgo, "count", "2"},
		{IndicatorTotalOffersVsLastMonth, "count", "2"},
		{IndicatorNewOffersThisMonth, "count", "1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.indicator), func(t *testing.T) {
			repo := new(mockRecordRepository)
			repo.On("ListOffers", mock.Anything, analytics.RecordFilter{}).Return(offers, nil).Maybe()
			repo.On("ListPayments", mock.Anything, analytics.RecordFilter{}).Return(payments, nil).Maybe()

			uc := NewGetIndicatorUseCase(repo, logger.NewNopLogger())
			uc.now = fixedClock

			resp, err := uc.Execute(context.Background(), GetIndicatorQuery{Indicator: tt.indicator})
			require.NoError(t, err)
			assert.Equal(t, string(tt.indicator), resp.Name)
			assert.Equal(t, tt.kind, resp.Kind)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(resp.Value), "got %s", resp.Value)
		})
	}
}

func TestGetIndicatorUseCase_DeltaWithoutData(t *testing.T) {
	biztime.MustInit("UTC")

	for _, indicator := range []Indicator{
		IndicatorProfitVsPreviousMonth,
		IndicatorSalesVsPreviousMonth,
		IndicatorTotalOffersVs30DaysAgo,
		IndicatorTotalOffersVsLastMonth,
	} {
		t.Run(string(indicator), func(t *testing.T) {
			repo := new(mockRecordRepository)
			repo.On("ListOffers", mock.Anything, mock.Anything).Return([]analytics.Offer{}, nil).Maybe()
			repo.On("ListPayments", mock.Anything, mock.Anything).Return([]analytics.Payment{}, nil).Maybe()

			uc := NewGetIndicatorUseCase(repo, logger.NewNopLogger())
			uc.now = fixedClock

			resp, err := uc.Execute(context.Background(), GetIndicatorQuery{Indicator: indicator})
			require.NoError(t, err)
			assert.True(t, resp.Value.IsZero())
		})
	}
}

func TestGetIndicatorUseCase_OwnerScope(t *testing.T) {
	biztime.MustInit("UTC")

	repo := new(mockRecordRepository)
	repo.On("ListOffers", mock.Anything, analytics.RecordFilter{OwnerID: "alice"}).Return([]analytics.Offer{
		{ID: "o1", OwnerID: "alice", CreatedAt: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
	}, nil)

	uc := NewGetIndicatorUseCase(repo, logger.NewNopLogger())
	uc.now = fixedClock

	resp, err := uc.Execute(context.Background(), GetIndicatorQuery{Scope: OwnerScope("alice"), Indicator: IndicatorTotalOffers})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(resp.Value))
	repo.AssertExpectations(t)
}

func TestGetIndicatorUseCase_UnknownIndicator(t *testing.T) {
	uc := NewGetIndicatorUseCase(new(mockRecordRepository), logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), GetIndicatorQuery{Indicator: "average_basket"})
	assert.True(t, errors.IsBadRequestError(err))
}
