package dto

import (
	"github.com/orris-inc/monitor/internal/domain/analytics"
)

func ToSeriesPoints(buckets []analytics.Bucket) []SeriesPointDTO {
	points := make([]SeriesPointDTO, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, SeriesPointDTO{Label: b.Label, Value: b.Value})
	}
	return points
}

func ToPredictionPoints(predictions []analytics.Prediction) []SeriesPointDTO {
	points := make([]SeriesPointDTO, 0, len(predictions))
	for _, p := range predictions {
		points = append(points, SeriesPointDTO{Label: p.Label, Value: p.Value})
	}
	return points
}

func ToPaymentDTO(p analytics.Payment) PaymentDTO {
	return PaymentDTO{
		OfferID:     p.OfferID,
		Amount:      p.Amount,
		Nationality: p.Nationality,
		Timestamp:   p.Timestamp,
	}
}

func ToPaymentDTOs(payments []analytics.Payment) []PaymentDTO {
	result := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		result = append(result, ToPaymentDTO(p))
	}
	return result
}

func ToOfferDTOs(summaries []analytics.OfferSummary) []OfferDTO {
	result := make([]OfferDTO, 0, len(summaries))
	for _, s := range summaries {
		tags := s.Tags
		if tags == nil {
			tags = []string{}
		}
		result = append(result, OfferDTO{
			ID:          s.ID,
			OwnerID:     s.OwnerID,
			Tags:        tags,
			CreatedAt:   s.FirstSeen,
			LastUpdated: s.LastSeen,
		})
	}
	return result
}

func ToCategoryCountDTOs(counts []analytics.CategoryCount) []CategoryCountDTO {
	result := make([]CategoryCountDTO, 0, len(counts))
	for _, c := range counts {
		result = append(result, CategoryCountDTO{Category: c.Category, Count: c.Count})
	}
	return result
}
