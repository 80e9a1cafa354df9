package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/monitor/internal/application/analytics/dto"
	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// Breakdown names a categorical count.
type Breakdown string

const (
	// BreakdownNationality counts payments per buyer nationality.
	BreakdownNationality Breakdown = "nationality"
	// BreakdownConsumedTags counts the tags of purchased offers.
	BreakdownConsumedTags Breakdown = "consumed_tags"
	// BreakdownOfferTags counts the current tags of distinct offers.
	BreakdownOfferTags Breakdown = "offer_tags"
)

// GetBreakdownQuery selects a categorical count. Limit <= 0 returns every
// category.
type GetBreakdownQuery struct {
	Scope     Scope
	Breakdown Breakdown
	Limit     int
}

type GetBreakdownUseCase struct {
	repo   analytics.RecordRepository
	logger logger.Interface
}

func NewGetBreakdownUseCase(repo analytics.RecordRepository, logger logger.Interface) *GetBreakdownUseCase {
	return &GetBreakdownUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetBreakdownUseCase) Execute(ctx context.Context, query GetBreakdownQuery) ([]dto.CategoryCountDTO, error) {
	var needs recordNeeds
	switch query.Breakdown {
	case BreakdownNationality:
		needs = recordNeeds{payments: true}
	case BreakdownConsumedTags:
		needs = recordNeeds{offers: true, payments: true}
	case BreakdownOfferTags:
		needs = recordNeeds{offers: true}
	default:
		return nil, toAppError(fmt.Errorf("%w: unknown breakdown %q", analytics.ErrInvalidQueryKey, query.Breakdown), "")
	}

	snapshot, err := loadSnapshot(ctx, uc.repo, query.Scope, needs)
	if err != nil {
		uc.logger.Errorw("failed to load records for breakdown",
			"breakdown", query.Breakdown,
			"owner_id", query.Scope.OwnerID,
			"error", err,
		)
		return nil, toAppError(err, "failed to load records")
	}

	var counts []analytics.CategoryCount
	switch query.Breakdown {
	case BreakdownNationality:
		counts = analytics.CountByNationality(snapshot.Payments)
	case BreakdownConsumedTags:
		index := analytics.IndexOffers(analytics.SummarizeOffers(snapshot.Offers))
		counts = analytics.TopNCategorical(snapshot.Payments, index, query.Limit)
	case BreakdownOfferTags:
		counts = analytics.CountOffersByTag(analytics.SummarizeOffers(snapshot.Offers))
	}

	if query.Limit > 0 && len(counts) > query.Limit {
		counts = counts[:query.Limit]
	}
	return dto.ToCategoryCountDTOs(counts), nil
}
