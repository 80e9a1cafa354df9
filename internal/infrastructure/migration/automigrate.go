package migration

import (
	"github.com/orris-inc/monitor/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.OfferModel{},
		&models.PaymentModel{},
	}
}
