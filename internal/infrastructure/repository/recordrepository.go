package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/monitor/internal/infrastructure/persistence/models"
	"github.com/orris-inc/monitor/internal/shared/constants"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// RecordRepositoryImpl implements the analytics.RecordRepository interface
type RecordRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewRecordRepository creates a new record repository instance
func NewRecordRepository(db *gorm.DB, logger logger.Interface) analytics.RecordRepository {
	return &RecordRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// ListOffers returns all stored offer versions ordered by timestamp.
func (r *RecordRepositoryImpl) ListOffers(ctx context.Context, filter analytics.RecordFilter) ([]analytics.Offer, error) {
	var rows []models.OfferModel

	tx := r.db.WithContext(ctx).Model(&models.OfferModel{})
	if filter.IsOwnerScoped() {
		tx = tx.Where("owner_id = ?", filter.OwnerID)
	}
	if err := tx.Order("timestamp ASC").Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list offers", "owner_id", filter.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	offers, err := mappers.OffersToEntities(rows)
	if err != nil {
		r.logger.Errorw("failed to map offer models", "error", err)
		return nil, fmt.Errorf("failed to map offers: %w", err)
	}
	return offers, nil
}

// ListPayments returns payments ordered by timestamp, then insertion order.
func (r *RecordRepositoryImpl) ListPayments(ctx context.Context, filter analytics.RecordFilter) ([]analytics.Payment, error) {
	var rows []models.PaymentModel

	tx := r.scopedPayments(ctx, filter)
	if err := tx.Order("timestamp ASC").Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list payments", "owner_id", filter.OwnerID, "error", err)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return mappers.PaymentsToEntities(rows), nil
}

// RecentPayments returns at most limit payments, newest first.
func (r *RecordRepositoryImpl) RecentPayments(ctx context.Context, filter analytics.RecordFilter, limit int) ([]analytics.Payment, error) {
	if limit <= 0 {
		return []analytics.Payment{}, nil
	}

	var rows []models.PaymentModel

	tx := r.scopedPayments(ctx, filter)
	if err := tx.Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list recent payments", "owner_id", filter.OwnerID, "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to list recent payments: %w", err)
	}

	return mappers.PaymentsToEntities(rows), nil
}

// AppendOffer stores a new offer version.
func (r *RecordRepositoryImpl) AppendOffer(ctx context.Context, offer *analytics.Offer) error {
	model, err := mappers.OfferToModel(offer)
	if err != nil {
		return fmt.Errorf("failed to map offer entity: %w", err)
	}
	model.ID = 0

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append offer", "offer_id", offer.ID, "error", err)
		return fmt.Errorf("failed to append offer: %w", err)
	}

	offer.RowID = model.ID
	r.logger.Debugw("offer appended", "id", model.ID, "offer_id", offer.ID, "owner_id", offer.OwnerID)
	return nil
}

// AppendPayment stores a new payment.
func (r *RecordRepositoryImpl) AppendPayment(ctx context.Context, payment *analytics.Payment) error {
	model := mappers.PaymentToModel(payment)
	model.ID = 0

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append payment", "offer_id", payment.OfferID, "error", err)
		return fmt.Errorf("failed to append payment: %w", err)
	}

	payment.RowID = model.ID
	r.logger.Debugw("payment appended", "id", model.ID, "offer_id", payment.OfferID)
	return nil
}

// scopedPayments restricts payments to offers that belong to the filter owner.
func (r *RecordRepositoryImpl) scopedPayments(ctx context.Context, filter analytics.RecordFilter) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	if filter.IsOwnerScoped() {
		owned := r.db.WithContext(ctx).
			Table(constants.TableOffers).
			Select("offer_id").
			Where("owner_id = ?", filter.OwnerID)
		tx = tx.Where("offer_id IN (?)", owned)
	}
	return tx
}
