package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/monitor/internal/shared/constants"
)

// OfferModel is one stored version of an offer. Several rows may share an
// OfferID; the row with the latest Timestamp is the current version.
type OfferModel struct {
	ID        uint           `gorm:"primarykey"`
	OfferID   string         `gorm:"column:offer_id;not null;size:64;index:idx_offers_offer_ts,priority:1"`
	OwnerID   string         `gorm:"column:owner_id;not null;size:64;index"`
	Tags      datatypes.JSON `gorm:"column:tags"`
	Timestamp time.Time      `gorm:"column:timestamp;not null;index:idx_offers_offer_ts,priority:2;index"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (OfferModel) TableName() string {
	return constants.TableOffers
}
