package analytics

import "context"

// RecordFilter scopes record reads. An empty OwnerID reads every record.
type RecordFilter struct {
	OwnerID string
}

// IsOwnerScoped reports whether reads are restricted to one owner.
func (f RecordFilter) IsOwnerScoped() bool {
	return f.OwnerID != ""
}

// RecordRepository provides access to offers and payments.
type RecordRepository interface {
	// ListOffers returns every stored offer version visible to the filter.
	ListOffers(ctx context.Context, filter RecordFilter) ([]Offer, error)

	// ListPayments returns payments visible to the filter. An owner-scoped
	// read keeps only payments whose offer belongs to the owner.
	ListPayments(ctx context.Context, filter RecordFilter) ([]Payment, error)

	// RecentPayments returns the newest payments first.
	RecentPayments(ctx context.Context, filter RecordFilter, limit int) ([]Payment, error)

	AppendOffer(ctx context.Context, offer *Offer) error
	AppendPayment(ctx context.Context, payment *Payment) error
}
