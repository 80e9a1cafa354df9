package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/monitor/internal/shared/biztime"
)

// Period is a look-back distance for period-over-period comparisons.
type Period struct {
	Months int
	Days   int
}

var (
	PeriodMonth  = Period{Months: 1}
	Period30Days = Period{Days: 30}
)

// Before returns t moved back by the period on the business calendar. Month
// steps clamp the day to the end of the target month, so 31 March goes back
// to the last day of February.
func (p Period) Before(t time.Time) time.Time {
	local := biztime.ToBizTimezone(t)
	if p.Months != 0 {
		year, month, day := local.Date()
		target := time.Date(year, month-time.Month(p.Months), 1, 0, 0, 0, 0, local.Location())
		if last := daysIn(target); day > last {
			day = last
		}
		hour, minute, sec := local.Clock()
		local = time.Date(target.Year(), target.Month(), day, hour, minute, sec, local.Nanosecond(), local.Location())
	}
	return local.AddDate(0, 0, -p.Days).UTC()
}

func daysIn(monthStart time.Time) int {
	return monthStart.AddDate(0, 1, -1).Day()
}

// CategoryCount is one row of a categorical breakdown.
type CategoryCount struct {
	Category string
	Count    int64
}

// TotalOffers counts distinct offers first seen at or before asOf.
func TotalOffers(summaries []OfferSummary, asOf time.Time) int64 {
	var total int64
	for _, s := range summaries {
		if !s.FirstSeen.After(asOf) {
			total++
		}
	}
	return total
}

// NewOffersThisMonth counts distinct offers first seen since the start of
// asOf's month, up to asOf.
func NewOffersThisMonth(summaries []OfferSummary, asOf time.Time) int64 {
	from := biztime.StartOfMonthInBiz(asOf)
	var total int64
	for _, s := range summaries {
		if !s.FirstSeen.Before(from) && s.FirstSeen.Before(asOf) {
			total++
		}
	}
	return total
}

// MonthToDateSum sums payment amounts from the start of asOf's month up to asOf.
func MonthToDateSum(payments []Payment, asOf time.Time) decimal.Decimal {
	from := biztime.StartOfMonthInBiz(asOf)
	sum := decimal.Zero
	for _, p := range payments {
		if !p.Timestamp.Before(from) && p.Timestamp.Before(asOf) {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// MonthToDateCount counts payments from the start of asOf's month up to asOf.
func MonthToDateCount(payments []Payment, asOf time.Time) int64 {
	from := biztime.StartOfMonthInBiz(asOf)
	var count int64
	for _, p := range payments {
		if !p.Timestamp.Before(from) && p.Timestamp.Before(asOf) {
			count++
		}
	}
	return count
}

// CountDelta returns metric(now) - metric(now - period). A side without data
// contributes zero.
func CountDelta(metric func(asOf time.Time) int64, now time.Time, period Period) int64 {
	return metric(now) - metric(period.Before(now))
}

// AmountDelta is CountDelta for monetary metrics.
func AmountDelta(metric func(asOf time.Time) decimal.Decimal, now time.Time, period Period) decimal.Decimal {
	return metric(now).Sub(metric(period.Before(now)))
}

// TopNCategorical joins payments to their offer's latest version, counts each
// tag once per payment and returns the n most frequent tags. Ties keep the
// order in which tags were first encountered, scanning payments
// chronologically. Payments without a matching offer are skipped.
func TopNCategorical(payments []Payment, offers map[string]OfferSummary, n int) []CategoryCount {
	counter := newCategoryCounter()
	for _, p := range SortPaymentsChronologically(payments) {
		offer, ok := offers[p.OfferID]
		if !ok {
			continue
		}
		for _, tag := range offer.Tags {
			counter.add(tag)
		}
	}
	return counter.top(n)
}

// CountByNationality groups payments by nationality, most frequent first.
func CountByNationality(payments []Payment) []CategoryCount {
	counter := newCategoryCounter()
	for _, p := range SortPaymentsChronologically(payments) {
		counter.add(p.Nationality)
	}
	return counter.top(0)
}

// CountOffersByTag counts the latest tags of each distinct offer.
func CountOffersByTag(summaries []OfferSummary) []CategoryCount {
	counter := newCategoryCounter()
	for _, s := range summaries {
		for _, tag := range s.Tags {
			counter.add(tag)
		}
	}
	return counter.top(0)
}

type categoryCounter struct {
	counts map[string]int64
	order  []string
}

func newCategoryCounter() *categoryCounter {
	return &categoryCounter{counts: make(map[string]int64)}
}

func (c *categoryCounter) add(category string) {
	if _, ok := c.counts[category]; !ok {
		c.order = append(c.order, category)
	}
	c.counts[category]++
}

// top returns categories by count descending; n <= 0 returns all of them.
func (c *categoryCounter) top(n int) []CategoryCount {
	result := make([]CategoryCount, 0, len(c.order))
	for _, category := range c.order {
		result = append(result, CategoryCount{Category: category, Count: c.counts[category]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}
