package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/biztime"
)

// OfferMessage is the payload of an offer stream message. Producers send the
// owner either as userid or owner_id.
type OfferMessage struct {
	ID        string   `json:"id" validate:"required"`
	UserID    string   `json:"userid"`
	OwnerID   string   `json:"owner_id"`
	Tags      []string `json:"tags"`
	Timestamp string   `json:"timestamp" validate:"required"`
}

// Owner returns the owner id, preferring owner_id.
func (m *OfferMessage) Owner() string {
	if m.OwnerID != "" {
		return m.OwnerID
	}
	return m.UserID
}

// ToOffer converts the message to a domain offer.
func (m *OfferMessage) ToOffer() (analytics.Offer, error) {
	ts, err := biztime.ParseTimestamp(m.Timestamp)
	if err != nil {
		return analytics.Offer{}, fmt.Errorf("%w: %v", analytics.ErrInvalidOffer, err)
	}
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return analytics.Offer{
		ID:        m.ID,
		OwnerID:   m.Owner(),
		Tags:      tags,
		CreatedAt: ts,
	}, nil
}

// PaymentMessage is the payload of a payment stream message. Amount accepts
// JSON numbers and numeric strings.
type PaymentMessage struct {
	OfferID     string          `json:"offer_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Nationality string          `json:"nationality"`
	Timestamp   string          `json:"timestamp" validate:"required"`
}

// ToPayment converts the message to a domain payment.
func (m *PaymentMessage) ToPayment() (analytics.Payment, error) {
	ts, err := biztime.ParseTimestamp(m.Timestamp)
	if err != nil {
		return analytics.Payment{}, fmt.Errorf("%w: %v", analytics.ErrInvalidPayment, err)
	}
	return analytics.Payment{
		OfferID:     m.OfferID,
		Amount:      m.Amount,
		Nationality: m.Nationality,
		Timestamp:   ts,
	}, nil
}
