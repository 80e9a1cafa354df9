package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/infrastructure/persistence/models"
	"github.com/orris-inc/monitor/internal/shared/mapper"
)

// OfferToEntity converts a persistence model to a domain offer.
func OfferToEntity(model *models.OfferModel) (analytics.Offer, error) {
	tags := []string{}
	if len(model.Tags) > 0 {
		if err := json.Unmarshal(model.Tags, &tags); err != nil {
			return analytics.Offer{}, fmt.Errorf("failed to unmarshal tags of offer %s: %w", model.OfferID, err)
		}
	}

	return analytics.Offer{
		RowID:     model.ID,
		ID:        model.OfferID,
		OwnerID:   model.OwnerID,
		Tags:      tags,
		CreatedAt: model.Timestamp.UTC(),
	}, nil
}

// OfferToModel converts a domain offer to a persistence model.
func OfferToModel(offer *analytics.Offer) (*models.OfferModel, error) {
	tags := offer.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags of offer %s: %w", offer.ID, err)
	}

	return &models.OfferModel{
		ID:        offer.RowID,
		OfferID:   offer.ID,
		OwnerID:   offer.OwnerID,
		Tags:      datatypes.JSON(raw),
		Timestamp: offer.CreatedAt.UTC(),
	}, nil
}

// OffersToEntities converts offer models, failing on the first bad row.
func OffersToEntities(rows []models.OfferModel) ([]analytics.Offer, error) {
	return mapper.MapSliceWithError(rows, func(row models.OfferModel) (analytics.Offer, error) {
		return OfferToEntity(&row)
	})
}

// PaymentToEntity converts a persistence model to a domain payment.
func PaymentToEntity(model *models.PaymentModel) analytics.Payment {
	return analytics.Payment{
		RowID:       model.ID,
		OfferID:     model.OfferID,
		Amount:      model.Amount,
		Nationality: model.Nationality,
		Timestamp:   model.Timestamp.UTC(),
	}
}

// PaymentToModel converts a domain payment to a persistence model.
func PaymentToModel(payment *analytics.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:          payment.RowID,
		OfferID:     payment.OfferID,
		Amount:      payment.Amount,
		Nationality: payment.Nationality,
		Timestamp:   payment.Timestamp.UTC(),
	}
}

// PaymentsToEntities converts payment models.
func PaymentsToEntities(rows []models.PaymentModel) []analytics.Payment {
	return mapper.MapSlice(rows, func(row models.PaymentModel) analytics.Payment {
		return PaymentToEntity(&row)
	})
}
