package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/orris-inc/monitor/internal/domain/analytics"
)

type mockRecordRepository struct {
	mock.Mock
}

func (m *mockRecordRepository) ListOffers(ctx context.Context, filter analytics.RecordFilter) ([]analytics.Offer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.Offer), args.Error(1)
}

func (m *mockRecordRepository) ListPayments(ctx context.Context, filter analytics.RecordFilter) ([]analytics.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.Payment), args.Error(1)
}

func (m *mockRecordRepository) RecentPayments(ctx context.Context, filter analytics.RecordFilter, limit int) ([]analytics.Payment, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.Payment), args.Error(1)
}

func (m *mockRecordRepository) AppendOffer(ctx context.Context, offer *analytics.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *mockRecordRepository) AppendPayment(ctx context.Context, payment *analytics.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type mockTrendProvider struct {
	mock.Mock
}

func (m *mockTrendProvider) FetchInterestSeries(ctx context.Context, term string, window analytics.TrendWindow) ([]analytics.InterestPoint, error) {
	args := m.Called(ctx, term, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.InterestPoint), args.Error(1)
}
