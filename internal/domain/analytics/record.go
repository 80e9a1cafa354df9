package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Offer is one stored version of an offer. The same ID may be stored several
// times; the latest version wins for owner and tags, the earliest timestamp is
// the offer's creation time.
type Offer struct {
	RowID     uint
	ID        string
	OwnerID   string
	Tags      []string
	CreatedAt time.Time
}

// Validate checks the fields required to store an offer.
func (o *Offer) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidOffer)
	}
	if strings.TrimSpace(o.OwnerID) == "" {
		return fmt.Errorf("%w: owner id is required", ErrInvalidOffer)
	}
	if o.CreatedAt.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidOffer)
	}
	return nil
}

// Payment is a purchase of an offer.
type Payment struct {
	RowID       uint
	OfferID     string
	Amount      decimal.Decimal
	Nationality string
	Timestamp   time.Time
}

// Validate checks the fields required to store a payment.
func (p *Payment) Validate() error {
	if strings.TrimSpace(p.OfferID) == "" {
		return fmt.Errorf("%w: offer id is required", ErrInvalidPayment)
	}
	if p.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidPayment)
	}
	if p.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidPayment)
	}
	return nil
}

// OfferSummary collapses all stored versions of one offer.
type OfferSummary struct {
	ID        string
	OwnerID   string
	Tags      []string
	FirstSeen time.Time
	LastSeen  time.Time
}

// SummarizeOffers groups offer versions by ID. The result is ordered by first
// seen time, then ID.
func SummarizeOffers(offers []Offer) []OfferSummary {
	byID := make(map[string]*OfferSummary, len(offers))
	order := make([]string, 0, len(offers))

	for _, o := range offers {
		s, ok := byID[o.ID]
		if !ok {
			byID[o.ID] = &OfferSummary{
				ID:        o.ID,
				OwnerID:   o.OwnerID,
				Tags:      o.Tags,
				FirstSeen: o.CreatedAt,
				LastSeen:  o.CreatedAt,
			}
			order = append(order, o.ID)
			continue
		}
		if o.CreatedAt.Before(s.FirstSeen) {
			s.FirstSeen = o.CreatedAt
		}
		// ties keep the later stored row
		if !o.CreatedAt.Before(s.LastSeen) {
			s.LastSeen = o.CreatedAt
			s.OwnerID = o.OwnerID
			s.Tags = o.Tags
		}
	}

	result := make([]OfferSummary, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].FirstSeen.Equal(result[j].FirstSeen) {
			return result[i].FirstSeen.Before(result[j].FirstSeen)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// IndexOffers maps offer summaries by ID.
func IndexOffers(summaries []OfferSummary) map[string]OfferSummary {
	index := make(map[string]OfferSummary, len(summaries))
	for _, s := range summaries {
		index[s.ID] = s
	}
	return index
}

// SortPaymentsChronologically orders payments by timestamp, then row id.
func SortPaymentsChronologically(payments []Payment) []Payment {
	sorted := make([]Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].RowID < sorted[j].RowID
	})
	return sorted
}

// RecordSnapshot is the materialized input of one analytics request.
type RecordSnapshot struct {
	Offers   []Offer
	Payments []Payment
}
