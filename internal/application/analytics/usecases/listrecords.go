package usecases

import (
	"context"

	"github.com/orris-inc/monitor/internal/application/analytics/dto"
	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// ListPaymentsUseCase lists payments visible to a scope, oldest first.
type ListPaymentsUseCase struct {
	repo   analytics.RecordRepository
	logger logger.Interface
}

func NewListPaymentsUseCase(repo analytics.RecordRepository, logger logger.Interface) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, scope Scope) ([]dto.PaymentDTO, error) {
	payments, err := uc.repo.ListPayments(ctx, scope.filter())
	if err != nil {
		uc.logger.Errorw("failed to list payments", "owner_id", scope.OwnerID, "error", err)
		return nil, toAppError(err, "failed to list payments")
	}
	return dto.ToPaymentDTOs(payments), nil
}

// ListRecentPaymentsUseCase lists the newest payments visible to a scope.
type ListRecentPaymentsUseCase struct {
	repo   analytics.RecordRepository
	logger logger.Interface
}

func NewListRecentPaymentsUseCase(repo analytics.RecordRepository, logger logger.Interface) *ListRecentPaymentsUseCase {
	return &ListRecentPaymentsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListRecentPaymentsUseCase) Execute(ctx context.Context, scope Scope, limit int) ([]dto.PaymentDTO, error) {
	payments, err := uc.repo.RecentPayments(ctx, scope.filter(), limit)
	if err != nil {
		uc.logger.Errorw("failed to list recent payments", "owner_id", scope.OwnerID, "limit", limit, "error", err)
		return nil, toAppError(err, "failed to list recent payments")
	}
	return dto.ToPaymentDTOs(payments), nil
}

// ListOffersUseCase lists the latest version of every offer visible to a
// scope.
type ListOffersUseCase struct {
	repo   analytics.RecordRepository
	logger logger.Interface
}

func NewListOffersUseCase(repo analytics.RecordRepository, logger logger.Interface) *ListOffersUseCase {
	return &ListOffersUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListOffersUseCase) Execute(ctx context.Context, scope Scope) ([]dto.OfferDTO, error) {
	offers, err := uc.repo.ListOffers(ctx, scope.filter())
	if err != nil {
		uc.logger.Errorw("failed to list offers", "owner_id", scope.OwnerID, "error", err)
		return nil, toAppError(err, "failed to list offers")
	}
	return dto.ToOfferDTOs(analytics.SummarizeOffers(offers)), nil
}
