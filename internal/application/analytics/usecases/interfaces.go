package usecases

import (
	"context"

	"github.com/orris-inc/monitor/internal/domain/analytics"
)

// TrendProvider fetches an external interest series for a search term.
type TrendProvider interface {
	FetchInterestSeries(ctx context.Context, term string, window analytics.TrendWindow) ([]analytics.InterestPoint, error)
}
