package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/monitor/internal/shared/biztime"
)

func TestMain(m *testing.M) {
	biztime.MustInit("UTC")
	m.Run()
}

var testNow = time.Date(2024, 1, 15, 10, 45, 0, 0, time.UTC)

func paymentAt(t time.Time, amount int64) Payment {
	return Payment{OfferID: "o1", Amount: decimal.NewFromInt(amount), Timestamp: t}
}

func TestBucketCounts_LengthAndOrder(t *testing.T) {
	for _, g := range []Granularity{GranularityHour, GranularityDay, GranularityMonth} {
		t.Run(string(g), func(t *testing.T) {
			buckets := BucketCounts(nil, g, g.WindowLength(), SelectCount, ModeNewInPeriod, testNow)
			require.Len(t, buckets, g.WindowLength())

			for i := 1; i < len(buckets); i++ {
				assert.True(t, buckets[i-1].Start.Before(buckets[i].Start), "bucket %d not after %d", i, i-1)
			}
			assert.Equal(t, g.Truncate(testNow), buckets[len(buckets)-1].Start)
		})
	}
}

func TestBucketCounts_MonthLabelsCrossYear(t *testing.T) {
	buckets := BucketCounts(nil, GranularityMonth, 12, SelectCount, ModeNewInPeriod, testNow)

	assert.Equal(t, "02/2023", buckets[0].Label)
	assert.Equal(t, "12/2023", buckets[10].Label)
	assert.Equal(t, "01/2024", buckets[11].Label)
}

func TestBucketCounts_Idempotent(t *testing.T) {
	events := PaymentEvents([]Payment{
		paymentAt(testNow.Add(-3*time.Hour), 4),
		paymentAt(testNow.Add(-30*time.Minute), 6),
	})

	first := BucketCounts(events, GranularityHour, 24, SelectAmount, ModeNewInPeriod, testNow)
	second := BucketCounts(events, GranularityHour, 24, SelectAmount, ModeNewInPeriod, testNow)
	assert.Equal(t, first, second)
}

func TestBucketCounts_GapFill(t *testing.T) {
	events := PaymentEvents([]Payment{
		paymentAt(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), 10),
		paymentAt(time.Date(2024, 1, 14, 23, 59, 0, 0, time.UTC), 5),
		paymentAt(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), 1),
	})

	buckets := BucketCounts(events, GranularityDay, 30, SelectAmount, ModeNewInPeriod, testNow)
	require.Len(t, buckets, 30)

	nonZero := map[string]float64{}
	for _, b := range buckets {
		if b.Value != 0 {
			nonZero[b.Label] = b.Value
		}
	}
	assert.Equal(t, map[string]float64{
		"02/01/2024": 10,
		"14/01/2024": 6,
	}, nonZero)
	assert.Equal(t, "15/01/2024", buckets[29].Label)
	assert.Equal(t, 0.0, buckets[29].Value)
}

func TestBucketCounts_SelectorAndMode(t *testing.T) {
	old := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	events := PaymentEvents([]Payment{paymentAt(old, 7), paymentAt(recent, 3)})

	t.Run("new in period ignores events before the window", func(t *testing.T) {
		buckets := BucketCounts(events, GranularityDay, 30, SelectCount, ModeNewInPeriod, testNow)
		var total float64
		for _, b := range buckets {
			total += b.Value
		}
		assert.Equal(t, 1.0, total)
	})

	t.Run("cumulative carries history into every bucket", func(t *testing.T) {
		buckets := BucketCounts(events, GranularityDay, 30, SelectAmount, ModeCumulative, testNow)
		assert.Equal(t, 7.0, buckets[0].Value)
		assert.Equal(t, 10.0, buckets[29].Value)
	})

	t.Run("events after now are ignored", func(t *testing.T) {
		future := PaymentEvents([]Payment{paymentAt(testNow.AddDate(0, 0, 2), 1)})
		buckets := BucketCounts(future, GranularityDay, 30, SelectCount, ModeCumulative, testNow)
		assert.Equal(t, 0.0, buckets[29].Value)
	})
}

func TestBuildSeries_TotalOffersMonotonic(t *testing.T) {
	snapshot := &RecordSnapshot{Offers: []Offer{
		{ID: "a", OwnerID: "u", CreatedAt: time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "b", OwnerID: "u", CreatedAt: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "a", OwnerID: "u", CreatedAt: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "c", OwnerID: "v", CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
	}}

	for _, g := range []Granularity{GranularityHour, GranularityDay, GranularityMonth} {
		buckets, err := BuildSeries(SeriesKey{Granularity: g, Metric: MetricTotalOffers}, snapshot, testNow)
		require.NoError(t, err)
		for i := 1; i < len(buckets); i++ {
			assert.GreaterOrEqual(t, buckets[i].Value, buckets[i-1].Value)
		}
		assert.Equal(t, 3.0, buckets[len(buckets)-1].Value)
	}
}

func TestBuildSeries_NewOffersCountsFirstSeenOnly(t *testing.T) {
	snapshot := &RecordSnapshot{Offers: []Offer{
		{ID: "a", OwnerID: "u", CreatedAt: time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "a", OwnerID: "u", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "b", OwnerID: "u", CreatedAt: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)},
	}}

	buckets, err := BuildSeries(SeriesKey{Granularity: GranularityMonth, Metric: MetricNewOffers}, snapshot, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1.0, buckets[11].Value)
	assert.Equal(t, 1.0, buckets[1].Value)
}

func TestBuildSeries_InvalidKey(t *testing.T) {
	_, err := BuildSeries(SeriesKey{Granularity: "week", Metric: MetricProfit}, &RecordSnapshot{}, testNow)
	assert.ErrorIs(t, err, ErrInvalidQueryKey)
}

func TestBucketCounts_HourLabelsUniqueAcrossFallBack(t *testing.T) {
	biztime.MustInit("Europe/Lisbon")
	t.Cleanup(func() { biztime.MustInit("UTC") })

	// 2024-10-27 01:00 UTC: Lisbon falls back from WEST (UTC+1) to WET (UTC+0)
	now := time.Date(2024, 10, 27, 5, 30, 0, 0, time.UTC)
	buckets := BucketCounts(nil, GranularityHour, GranularityHour.WindowLength(), SelectCount, ModeNewInPeriod, now)

	seen := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		assert.False(t, seen[b.Label], "duplicate label %s", b.Label)
		seen[b.Label] = true
	}

	first := GranularityHour.Label(time.Date(2024, 10, 27, 0, 0, 0, 0, time.UTC))
	second := GranularityHour.Label(time.Date(2024, 10, 27, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, "27/10/2024 01:00", first)
	assert.NotEqual(t, first, second)
	assert.Contains(t, second, "27/10/2024 01:00")
	assert.Equal(t, "27/10/2024 02:00", GranularityHour.Label(time.Date(2024, 10, 27, 2, 0, 0, 0, time.UTC)))
}
