package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/monitor/internal/application/analytics/dto"
	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/biztime"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// Indicator names a scalar snapshot value.
type Indicator string

const (
	IndicatorProfitThisMonth        Indicator = "profit_this_month"
	IndicatorProfitVsPreviousMonth  Indicator = "profit_comparison_with_previous_month"
	IndicatorSalesThisMonth         Indicator = "number_of_sales_this_month"
	IndicatorSalesVsPreviousMonth   Indicator = "number_of_sales_comparison_with_previous_month"
	IndicatorTotalOffers            Indicator = "total_number_of_offers"
	IndicatorTotalOffersVs30DaysAgo Indicator = "total_number_of_offers_variation_since_30_days_ago"
	IndicatorTotalOffersVsLastMonth Indicator = "total_number_of_offers_variation_since_last_month"
	IndicatorNewOffersThisMonth     Indicator = "new_offers_this_month"
)

const (
	kindCount  = "count"
	kindAmount = "amount"
)

type indicatorDefinition struct {
	kind    string
	needs   recordNeeds
	compute func(snapshot *analytics.RecordSnapshot, now time.Time) decimal.Decimal
}

var indicatorDefinitions = map[Indicator]indicatorDefinition{
	IndicatorProfitThisMonth: {
		kind:  kindAmount,
		needs: recordNeeds{payments: true},
		compute: func(s *analytics.RecordSnapshot, now time.Time) decimal.Decimal {
			return analytics.MonthToDateSum(s.Payments, now)
		},
	},
	IndicatorProfitVsPreviousMonth: {
		kind:  kindAmount,
		needs: recordNeeds{payments: true},
		compute: func(s *analytics.RecordSnapshot, now time.Time) decimal.Decimal {
			return analytics.AmountDelta(func(asOf time.Time) decimal.Decimal {
				return analytics.MonthToDateSum(s.Payments, asOf)
			}, now, analytics.PeriodMonth)
		},
	},
	IndicatorSalesThisMonth: {
		kind:  kindCount,
		needs: recordNeeds{payments: true},
		compute: func(s *analytics.RecordSnapshot, now time.Time) decimal.Decimal {
			return decimal.NewFromInt(analytics.MonthToDateCount(s.Payments, now))
		},
	},
	IndicatorSalesVsPreviousMonth: {
		kind:  kindCount,
		needs: recordNeeds{payments: true},
		compute: func(s *analytics.RecordSnapshot, now time.Time) decimal.Decimal {
			return decimal.NewFromInt(analytics.CountDelta(func(asOf time.Time) int64 {
				return analytics.MonthToDateCount(s.Payments, asOf)
			}, now, analytics.PeriodMonth))
		},
	},
	IndicatorTotalOffers: {
		kind:  kindCount,
		needs: recordNeeds{offers: true},
		compute: func(s *analytics.RecordSnapshot, now time.Time) decimal.Decimal {
			return decimal.NewFromInt(analytics.TotalOffers(analytics.SummarizeOffers(s.Offers), now))
		},
	},
	IndicatorTotalOffersVs30DaysAgo: {
		kind:  kindCount,
		needs: recordNeeds{offers: true},
		compute: func(s *analytics.RecordSnapshot, now time.Time) decimal.Decimal {
			return totalOffersDelta(s, now, analytics.Period30Days)
		},
	},
	IndicatorTotalOffersVsLastMonth: {
		kind:  kindCount,
		needs: recordNeeds{offers: true},
		compute: func(s *analytics.RecordSnapshot, now time.Time) decimal.Decimal {
			return totalOffersDelta(s, now, analytics.PeriodMonth)
		},
	},
	IndicatorNewOffersThisMonth: {
		kind:  kindCount,
		needs: recordNeeds{offers: true},
		compute: func(s *analytics.RecordSnapshot, now time.Time) decimal.Decimal {
			return decimal.NewFromInt(analytics.NewOffersThisMonth(analytics.SummarizeOffers(s.Offers), now))
		},
	},
}

func totalOffersDelta(s *analytics.RecordSnapshot, now time.Time, period analytics.Period) decimal.Decimal {
	summaries := analytics.SummarizeOffers(s.Offers)
	return decimal.NewFromInt(analytics.CountDelta(func(asOf time.Time) int64 {
		return analytics.TotalOffers(summaries, asOf)
	}, now, period))
}

// GetIndicatorQuery selects one scalar snapshot value.
type GetIndicatorQuery struct {
	Scope     Scope
	Indicator Indicator
}

// GetIndicatorUseCase computes scalar snapshot values such as month-to-date
// profit and period-over-period deltas.
type GetIndicatorUseCase struct {
	repo   analytics.RecordRepository
	logger logger.Interface
	now    func() time.Time
}

// NewGetIndicatorUseCase creates a new GetIndicatorUseCase
func NewGetIndicatorUseCase(repo analytics.RecordRepository, logger logger.Interface) *GetIndicatorUseCase {
	return &GetIndicatorUseCase{
		repo:   repo,
		logger: logger,
		now:    biztime.NowUTC,
	}
}

// Execute computes the requested indicator.
func (uc *GetIndicatorUseCase) Execute(ctx context.Context, query GetIndicatorQuery) (*dto.IndicatorResponse, error) {
	def, ok := indicatorDefinitions[query.Indicator]
	if !ok {
		return nil, toAppError(fmt.Errorf("%w: unknown indicator %q", analytics.ErrInvalidQueryKey, query.Indicator), "")
	}

	snapshot, err := loadSnapshot(ctx, uc.repo, query.Scope, def.needs)
	if err != nil {
		uc.logger.Errorw("failed to load records for indicator",
			"indicator", query.Indicator,
			"owner_id", query.Scope.OwnerID,
			"error", err,
		)
		return nil, toAppError(err, "failed to load records")
	}

	return &dto.IndicatorResponse{
		Name:  string(query.Indicator),
		Kind:  def.kind,
		Value: def.compute(snapshot, uc.now()),
	}, nil
}
