package usecases

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/errgroup"

	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/shared/errors"
)

// Scope selects whose records a query reads. The zero value is the public
// scope over every record.
type Scope struct {
	OwnerID string
}

// OwnerScope returns the scope of one owner's records.
func OwnerScope(ownerID string) Scope {
	return Scope{OwnerID: ownerID}
}

func (s Scope) filter() analytics.RecordFilter {
	return analytics.RecordFilter{OwnerID: s.OwnerID}
}

// Metrics returns the series metrics the scope may query.
func (s Scope) Metrics() []analytics.Metric {
	if s.OwnerID != "" {
		return analytics.ProviderMetrics
	}
	return analytics.PublicMetrics
}

type recordNeeds struct {
	offers   bool
	payments bool
}

// loadSnapshot reads the requested record sets concurrently.
func loadSnapshot(ctx context.Context, repo analytics.RecordRepository, scope Scope, needs recordNeeds) (*analytics.RecordSnapshot, error) {
	snapshot := &analytics.RecordSnapshot{}
	g, gctx := errgroup.WithContext(ctx)

	if needs.offers {
		g.Go(func() error {
			offers, err := repo.ListOffers(gctx, scope.filter())
			if err != nil {
				return err
			}
			snapshot.Offers = offers
			return nil
		})
	}
	if needs.payments {
		g.Go(func() error {
			payments, err := repo.ListPayments(gctx, scope.filter())
			if err != nil {
				return err
			}
			snapshot.Payments = payments
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// toAppError maps domain errors to application errors.
func toAppError(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, analytics.ErrInvalidQueryKey):
		return errors.NewBadRequestError("invalid query key", err.Error())
	case stderrors.Is(err, analytics.ErrInsufficientData):
		return errors.NewInsufficientDataError("not enough data", err.Error())
	case stderrors.Is(err, analytics.ErrExternalService):
		return errors.NewExternalServiceError("trend provider unavailable", err.Error())
	case stderrors.Is(err, analytics.ErrInvalidOffer), stderrors.Is(err, analytics.ErrInvalidPayment):
		return errors.NewValidationError("invalid record", err.Error())
	default:
		return errors.NewInternalError(message)
	}
}
