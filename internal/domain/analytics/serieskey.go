package analytics

import (
	"fmt"
	"time"
)

// Metric names a bucketed series.
type Metric string

const (
	MetricTotalOffers Metric = "total_offers"
	MetricNewOffers   Metric = "new_offers"
	MetricNumPayments Metric = "num_payments"
	MetricProfit      Metric = "profit"
)

func (m Metric) String() string {
	return string(m)
}

type entityKind int

const (
	entityOffers entityKind = iota
	entityPayments
)

type seriesDefinition struct {
	entity   entityKind
	selector Selector
	mode     CountingMode
}

var seriesDefinitions = map[Metric]seriesDefinition{
	MetricTotalOffers: {entity: entityOffers, selector: SelectCount, mode: ModeCumulative},
	MetricNewOffers:   {entity: entityOffers, selector: SelectCount, mode: ModeNewInPeriod},
	MetricNumPayments: {entity: entityPayments, selector: SelectCount, mode: ModeNewInPeriod},
	MetricProfit:      {entity: entityPayments, selector: SelectAmount, mode: ModeNewInPeriod},
}

// PublicMetrics are served without an owner filter.
var PublicMetrics = []Metric{MetricTotalOffers, MetricNewOffers, MetricNumPayments, MetricProfit}

// ProviderMetrics are served to owners over their own records.
var ProviderMetrics = []Metric{MetricNumPayments, MetricProfit}

// SeriesKey identifies a series by granularity first, then metric.
type SeriesKey struct {
	Granularity Granularity
	Metric      Metric
}

func (k SeriesKey) String() string {
	return fmt.Sprintf("%s/%s", k.Granularity, k.Metric)
}

// ParseSeriesKey validates a (granularity, metric) pair against the metrics
// allowed for the caller.
func ParseSeriesKey(granularity, metric string, allowed []Metric) (SeriesKey, error) {
	g, err := ParseGranularity(granularity)
	if err != nil {
		return SeriesKey{}, err
	}

	m := Metric(metric)
	for _, a := range allowed {
		if a == m {
			return SeriesKey{Granularity: g, Metric: m}, nil
		}
	}
	return SeriesKey{}, fmt.Errorf("%w: unknown metric %q for granularity %q", ErrInvalidQueryKey, metric, granularity)
}

// NeedsOffers reports whether the series reads offers.
func (k SeriesKey) NeedsOffers() bool {
	return seriesDefinitions[k.Metric].entity == entityOffers
}

// BuildSeries computes the series identified by key over the snapshot.
func BuildSeries(key SeriesKey, snapshot *RecordSnapshot, now time.Time) ([]Bucket, error) {
	def, ok := seriesDefinitions[key.Metric]
	if !ok || !key.Granularity.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQueryKey, key)
	}

	var events []Event
	switch def.entity {
	case entityOffers:
		events = OfferEvents(SummarizeOffers(snapshot.Offers))
	case entityPayments:
		events = PaymentEvents(snapshot.Payments)
	}

	return BucketCounts(events, key.Granularity, key.Granularity.WindowLength(), def.selector, def.mode, now), nil
}
