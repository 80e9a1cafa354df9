package analytics

import "fmt"

// TrendSummary is a slope/intercept pair describing a short linear trend.
type TrendSummary struct {
	Slope     float64
	Intercept float64
}

// InterestPoint is one value of an external interest series.
type InterestPoint struct {
	Index int
	Value int
}

// InterestValues returns the point values in order.
func InterestValues(points []InterestPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Value)
	}
	return values
}

// TrendWindow selects how much external history feeds a trend.
type TrendWindow string

const (
	// ShortWindow covers roughly the last month; used for hour and day forecasts.
	ShortWindow TrendWindow = "short"
	// LongWindow covers roughly the last three months; used for month forecasts.
	LongWindow TrendWindow = "long"
)

func (w TrendWindow) String() string {
	return string(w)
}

// WindowFor returns the trend window used to forecast a granularity.
func WindowFor(g Granularity) TrendWindow {
	if g == GranularityMonth {
		return LongWindow
	}
	return ShortWindow
}

const minTrendPoints = 3

// ShortWindowTrend averages the two slopes between the last three points and
// their matching intercepts.
func ShortWindowTrend(values []float64) (TrendSummary, error) {
	n := len(values)
	if n < minTrendPoints {
		return TrendSummary{}, fmt.Errorf("%w: need %d points, got %d", ErrInsufficientData, minTrendPoints, n)
	}

	slope1 := values[n-2] - values[n-3]
	slope2 := values[n-1] - values[n-2]
	b1 := values[n-3]
	b2 := values[n-2] - slope2

	return TrendSummary{
		Slope:     (slope1 + slope2) / 2,
		Intercept: (b1 + b2) / 2,
	}, nil
}

// LongWindowTrend splits the series into three contiguous segments (the
// remainder joins the last one) and fits a two-piece line through the
// segment means.
func LongWindowTrend(values []float64) (TrendSummary, error) {
	n := len(values)
	if n < minTrendPoints {
		return TrendSummary{}, fmt.Errorf("%w: need %d points, got %d", ErrInsufficientData, minTrendPoints, n)
	}

	size := n / 3
	segments := [3][]float64{
		values[:size],
		values[size : 2*size],
		values[2*size:],
	}

	var means [3]float64
	for i, segment := range segments {
		means[i] = mean(segment)
	}

	slope0 := means[1] - means[0]
	slope1 := means[2] - means[1]
	b1 := means[0]
	b2 := means[1] - slope0

	return TrendSummary{
		Slope:     (slope0 + slope1) / 2,
		Intercept: (b1 + b2) / 2,
	}, nil
}

// DeriveTrend applies the derivation matching the window.
func DeriveTrend(window TrendWindow, values []float64) (TrendSummary, error) {
	if window == LongWindow {
		return LongWindowTrend(values)
	}
	return ShortWindowTrend(values)
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
