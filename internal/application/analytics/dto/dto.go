package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalysisQuery is the query string of series and forecast endpoints.
type AnalysisQuery struct {
	Granularity string `form:"x" binding:"required" validate:"required,oneof=hour day month"`
	Metric      string `form:"y" binding:"required" validate:"required"`
}

// SeriesPointDTO is one labelled value of a series.
type SeriesPointDTO struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// SeriesResponse is a bucketed series, oldest bucket first.
type SeriesResponse struct {
	Granularity string           `json:"granularity"`
	Metric      string           `json:"metric"`
	Buckets     []SeriesPointDTO `json:"buckets"`
}

// TrendDTO describes the external trend applied to a forecast.
type TrendDTO struct {
	Window    string  `json:"window"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// PredictionResponse holds projected values for the periods after now.
type PredictionResponse struct {
	Granularity string           `json:"granularity"`
	Metric      string           `json:"metric"`
	Trend       TrendDTO         `json:"trend"`
	Predictions []SeriesPointDTO `json:"predictions"`
}

// PaymentDTO is a payment as returned by the API.
type PaymentDTO struct {
	OfferID     string          `json:"offer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Nationality string          `json:"nationality"`
	Timestamp   time.Time       `json:"timestamp"`
}

// OfferDTO is the latest version of an offer.
type OfferDTO struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// CategoryCountDTO is one row of a categorical breakdown.
type CategoryCountDTO struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// IndicatorResponse is a single scalar snapshot value. Kind is "count" or
// "amount".
type IndicatorResponse struct {
	Name  string          `json:"name"`
	Kind  string          `json:"kind"`
	Value decimal.Decimal `json:"value"`
}
