package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortWindowTrend(t *testing.T) {
	trend, err := ShortWindowTrend([]float64{99, 10, 12, 15})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, trend.Slope, 1e-12)
	assert.InDelta(t, 9.5, trend.Intercept, 1e-12)
}

func TestLongWindowTrend(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		slope     float64
		intercept float64
	}{
		{
			name:      "even split",
			values:    []float64{1, 3, 3, 5, 6, 6},
			slope:     2,
			intercept: 2,
		},
		{
			// segments [2] [4] [6 8 10]: means 2, 4, 8
			name:      "remainder joins the last segment",
			values:    []float64{2, 4, 6, 8, 10},
			slope:     3,
			intercept: 2,
		},
		{
			name:      "minimum length",
			values:    []float64{5, 1, 3},
			slope:     -1,
			intercept: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, err := LongWindowTrend(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, tt.slope, trend.Slope, 1e-12)
			assert.InDelta(t, tt.intercept, trend.Intercept, 1e-12)
		})
	}
}

func TestTrend_InsufficientData(t *testing.T) {
	for _, values := range [][]float64{nil, {1}, {1, 2}} {
		_, err := ShortWindowTrend(values)
		assert.ErrorIs(t, err, ErrInsufficientData)

		_, err = LongWindowTrend(values)
		assert.ErrorIs(t, err, ErrInsufficientData)
	}
}

func TestWindowFor(t *testing.T) {
	assert.Equal(t, LongWindow, WindowFor(GranularityMonth))
	assert.Equal(t, ShortWindow, WindowFor(GranularityDay))
	assert.Equal(t, ShortWindow, WindowFor(GranularityHour))
}

func TestDeriveTrend_SelectsFormula(t *testing.T) {
	values := []float64{1, 3, 3, 5, 6, 6}

	long, err := DeriveTrend(LongWindow, values)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, long.Slope, 1e-12)

	short, err := DeriveTrend(ShortWindow, values)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, short.Slope, 1e-12)
}

func TestInterestValues(t *testing.T) {
	values := InterestValues([]InterestPoint{{Index: 0, Value: 3}, {Index: 1, Value: 7}})
	assert.Equal(t, []float64{3, 7}, values)
}
