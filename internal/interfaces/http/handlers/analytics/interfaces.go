package analytics

import (
	"context"

	"github.com/orris-inc/monitor/internal/application/analytics/dto"
	"github.com/orris-inc/monitor/internal/application/analytics/usecases"
)

// Use case interfaces for Handler

type getSeriesUseCase interface {
	Execute(ctx context.Context, query usecases.GetSeriesQuery) (*dto.SeriesResponse, error)
}

type getPredictionUseCase interface {
	Execute(ctx context.Context, query usecases.GetPredictionQuery) (*dto.PredictionResponse, error)
}

type getIndicatorUseCase interface {
	Execute(ctx context.Context, query usecases.GetIndicatorQuery) (*dto.IndicatorResponse, error)
}

type getBreakdownUseCase interface {
	Execute(ctx context.Context, query usecases.GetBreakdownQuery) ([]dto.CategoryCountDTO, error)
}

type listPaymentsUseCase interface {
	Execute(ctx context.Context, scope usecases.Scope) ([]dto.PaymentDTO, error)
}

type listRecentPaymentsUseCase interface {
	Execute(ctx context.Context, scope usecases.Scope, limit int) ([]dto.PaymentDTO, error)
}

type listOffersUseCase interface {
	Execute(ctx context.Context, scope usecases.Scope) ([]dto.OfferDTO, error)
}
