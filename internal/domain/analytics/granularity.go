package analytics

import (
	"fmt"
	"time"

	"github.com/orris-inc/monitor/internal/shared/biztime"
)

// Granularity is the calendar unit of a bucket.
type Granularity string

const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// Label layouts for each granularity.
const (
	hourLabelLayout  = "02/01/2006 15:00"
	dayLabelLayout   = "02/01/2006"
	monthLabelLayout = "01/2006"
)

// ParseGranularity parses a granularity name.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(s)
	if !g.IsValid() {
		return "", fmt.Errorf("%w: unknown granularity %q", ErrInvalidQueryKey, s)
	}
	return g, nil
}

func (g Granularity) String() string {
	return string(g)
}

func (g Granularity) IsValid() bool {
	return g == GranularityHour || g == GranularityDay || g == GranularityMonth
}

// WindowLength returns the number of trailing buckets reported for the granularity.
func (g Granularity) WindowLength() int {
	switch g {
	case GranularityHour:
		return 24
	case GranularityDay:
		return 30
	case GranularityMonth:
		return 12
	default:
		return 0
	}
}

// Truncate returns the start of the period containing t, in the business
// timezone, as UTC.
func (g Granularity) Truncate(t time.Time) time.Time {
	switch g {
	case GranularityHour:
		return biztime.TruncateToHourInBiz(t)
	case GranularityDay:
		return biztime.StartOfDayUTC(t)
	case GranularityMonth:
		return biztime.StartOfMonthInBiz(t)
	default:
		return t.UTC()
	}
}

// Add moves a period start by n calendar periods. Day and month steps are
// taken on the business calendar so DST shifts do not skew boundaries.
func (g Granularity) Add(start time.Time, n int) time.Time {
	switch g {
	case GranularityHour:
		return start.Add(time.Duration(n) * time.Hour).UTC()
	case GranularityDay:
		return biztime.ToBizTimezone(start).AddDate(0, 0, n).UTC()
	case GranularityMonth:
		return biztime.ToBizTimezone(start).AddDate(0, n, 0).UTC()
	default:
		return start
	}
}

// Label formats a period start for display. The hour repeated when clocks go
// back carries the zone abbreviation, so both hours keep distinct labels.
func (g Granularity) Label(start time.Time) string {
	switch g {
	case GranularityHour:
		return hourLabel(start)
	case GranularityDay:
		return biztime.FormatInBizTimezone(start, dayLabelLayout)
	case GranularityMonth:
		return biztime.FormatInBizTimezone(start, monthLabelLayout)
	default:
		return biztime.FormatInBizTimezone(start, time.DateTime)
	}
}

func hourLabel(start time.Time) string {
	local := biztime.ToBizTimezone(start)
	label := local.Format(hourLabelLayout)
	prev := biztime.ToBizTimezone(start.Add(-time.Hour))
	if prev.Format(hourLabelLayout) == label {
		zone, _ := local.Zone()
		label += " " + zone
	}
	return label
}
