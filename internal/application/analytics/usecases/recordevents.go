package usecases

import (
	"context"

	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// RecordOfferUseCase appends an offer version to the record store.
type RecordOfferUseCase struct {
	repo   analytics.RecordRepository
	logger logger.Interface
}

func NewRecordOfferUseCase(repo analytics.RecordRepository, logger logger.Interface) *RecordOfferUseCase {
	return &RecordOfferUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute validates and stores the offer. Validation failures wrap
// analytics.ErrInvalidOffer.
func (uc *RecordOfferUseCase) Execute(ctx context.Context, offer *analytics.Offer) error {
	if err := offer.Validate(); err != nil {
		return err
	}
	if err := uc.repo.AppendOffer(ctx, offer); err != nil {
		return err
	}
	uc.logger.Infow("offer recorded", "offer_id", offer.ID, "owner_id", offer.OwnerID)
	return nil
}

// RecordPaymentUseCase appends a payment to the record store.
type RecordPaymentUseCase struct {
	repo   analytics.RecordRepository
	logger logger.Interface
}

func NewRecordPaymentUseCase(repo analytics.RecordRepository, logger logger.Interface) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute validates and stores the payment. Validation failures wrap
// analytics.ErrInvalidPayment.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, payment *analytics.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	if err := uc.repo.AppendPayment(ctx, payment); err != nil {
		return err
	}
	uc.logger.Infow("payment recorded", "offer_id", payment.OfferID, "amount", payment.Amount.String())
	return nil
}
