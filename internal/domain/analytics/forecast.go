package analytics

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultForecastHorizon is the number of projected periods.
	DefaultForecastHorizon = 3

	// forecastOffset is the step index of the first projected period.
	forecastOffset = 3

	// logEpsilon stands in for a zero trend component under the logarithm.
	logEpsilon = 1e-9
)

// Prediction is a projected value for a future period.
type Prediction struct {
	Label string
	Start time.Time
	Value float64
}

// Project extrapolates the local trend of series, nudged by the logarithm of
// the external trend, over the next horizon periods after now.
func Project(series []Bucket, trend TrendSummary, granularity Granularity, now time.Time, horizon int) ([]Prediction, error) {
	if !granularity.IsValid() {
		return nil, fmt.Errorf("%w: unknown granularity %q", ErrInvalidQueryKey, granularity)
	}
	if horizon <= 0 {
		horizon = DefaultForecastHorizon
	}

	local, err := ShortWindowTrend(BucketValues(series))
	if err != nil {
		return nil, err
	}

	current := granularity.Truncate(now)
	predictions := make([]Prediction, 0, horizon)
	for k := 0; k < horizon; k++ {
		i := float64(forecastOffset + k)
		start := granularity.Add(current, k+1)
		predictions = append(predictions, Prediction{
			Label: granularity.Label(start),
			Start: start,
			Value: local.Slope*i + local.Intercept + trendAdjustment(trend, i),
		})
	}

	return predictions, nil
}

// trendAdjustment is +ln(c) for a positive trend component c and -ln(|c|)
// otherwise.
func trendAdjustment(trend TrendSummary, i float64) float64 {
	component := trend.Slope*i + trend.Intercept
	if component > 0 {
		return math.Log(component)
	}
	return -math.Log(math.Max(math.Abs(component), logEpsilon))
}
