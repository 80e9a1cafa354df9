package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/monitor/internal/shared/constants"
)

// PaymentModel is a purchase of an offer. OfferID references offers.offer_id
// without a foreign key; orphaned payments are tolerated.
type PaymentModel struct {
	ID          uint            `gorm:"primarykey"`
	OfferID     string          `gorm:"column:offer_id;not null;size:64;index"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null"`
	Nationality string          `gorm:"column:nationality;size:64"`
	Timestamp   time.Time       `gorm:"column:timestamp;not null;index"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (PaymentModel) TableName() string {
	return constants.TablePayments
}
