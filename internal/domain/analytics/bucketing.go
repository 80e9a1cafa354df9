package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Selector chooses the value each matching record contributes to a bucket.
type Selector int

const (
	// SelectCount contributes 1 per record.
	SelectCount Selector = iota
	// SelectAmount contributes the record's amount.
	SelectAmount
)

// CountingMode chooses which buckets a record is counted in.
type CountingMode int

const (
	// ModeNewInPeriod counts a record only in the bucket containing its timestamp.
	ModeNewInPeriod CountingMode = iota
	// ModeCumulative counts a record in every bucket ending after its timestamp.
	ModeCumulative
)

// Bucket is one labelled calendar period with its aggregate value.
type Bucket struct {
	Label string
	Start time.Time
	Value float64
}

// Event is one countable occurrence fed into bucketing.
type Event struct {
	At     time.Time
	Amount decimal.Decimal
}

// OfferEvents returns one event per distinct offer at its first seen time.
func OfferEvents(summaries []OfferSummary) []Event {
	events := make([]Event, 0, len(summaries))
	for _, s := range summaries {
		events = append(events, Event{At: s.FirstSeen, Amount: decimal.NewFromInt(1)})
	}
	return events
}

// PaymentEvents returns one event per payment.
func PaymentEvents(payments []Payment) []Event {
	events := make([]Event, 0, len(payments))
	for _, p := range payments {
		events = append(events, Event{At: p.Timestamp, Amount: p.Amount})
	}
	return events
}

// BucketCounts aggregates events into windowLength trailing periods ending
// with the period that contains now. Every period yields a bucket, in
// ascending calendar order.
func BucketCounts(
	events []Event,
	granularity Granularity,
	windowLength int,
	selector Selector,
	mode CountingMode,
	now time.Time,
) []Bucket {
	if windowLength <= 0 || !granularity.IsValid() {
		return []Bucket{}
	}

	current := granularity.Truncate(now)
	first := granularity.Add(current, -(windowLength - 1))

	starts := make([]time.Time, windowLength)
	ends := make([]time.Time, windowLength)
	for i := 0; i < windowLength; i++ {
		starts[i] = granularity.Add(first, i)
		ends[i] = granularity.Add(first, i+1)
	}

	// contributions[i] holds values first counted in bucket i; cumulative mode
	// carries them forward with a running sum.
	contributions := make([]decimal.Decimal, windowLength)
	for i := range contributions {
		contributions[i] = decimal.Zero
	}

	for _, ev := range events {
		idx := sort.Search(windowLength, func(i int) bool {
			return ends[i].After(ev.At)
		})
		if idx == windowLength {
			continue
		}
		if mode == ModeNewInPeriod && ev.At.Before(starts[idx]) {
			continue
		}
		contributions[idx] = contributions[idx].Add(selectValue(ev, selector))
	}

	buckets := make([]Bucket, windowLength)
	running := decimal.Zero
	for i := 0; i < windowLength; i++ {
		value := contributions[i]
		if mode == ModeCumulative {
			running = running.Add(value)
			value = running
		}
		buckets[i] = Bucket{
			Label: granularity.Label(starts[i]),
			Start: starts[i],
			Value: value.InexactFloat64(),
		}
	}

	return buckets
}

func selectValue(ev Event, selector Selector) decimal.Decimal {
	if selector == SelectAmount {
		return ev.Amount
	}
	return decimal.NewFromInt(1)
}

// BucketValues extracts bucket values in order.
func BucketValues(buckets []Bucket) []float64 {
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = b.Value
	}
	return values
}
