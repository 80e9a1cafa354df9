package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/monitor/internal/application/analytics/usecases"
	"github.com/orris-inc/monitor/internal/interfaces/http/handlers/analytics"
	"github.com/orris-inc/monitor/internal/interfaces/http/middleware"
	"github.com/orris-inc/monitor/internal/shared/constants"
)

// AnalyticsRouteConfig holds dependencies for analytics routes.
type AnalyticsRouteConfig struct {
	Handler        *analytics.Handler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimiter is optional.
	RateLimiter   *middleware.RateLimiter
	RequiredScope string
}

// SetupAnalyticsRoutes configures the public dashboard routes under
// /api/monitor/dmo and the owner-scoped routes under /api/monitor/provider.
func SetupAnalyticsRoutes(engine *gin.Engine, cfg *AnalyticsRouteConfig) {
	api := engine.Group("/api/monitor")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Limit())
	}

	h := cfg.Handler

	dmo := api.Group("/dmo")
	{
		dmo.GET("/payments", h.ListPayments)
		dmo.GET("/number_of_payments_by_nationality", h.Breakdown(usecases.BreakdownNationality, 0))
		dmo.GET("/profit_this_month", h.Indicator(usecases.IndicatorProfitThisMonth))
		dmo.GET("/profit_comparison_with_previous_month", h.Indicator(usecases.IndicatorProfitVsPreviousMonth))
		dmo.GET("/number_of_sales_this_month", h.Indicator(usecases.IndicatorSalesThisMonth))
		dmo.GET("/number_of_sales_comparison_with_previous_month", h.Indicator(usecases.IndicatorSalesVsPreviousMonth))
		dmo.GET("/most_consumed_tags", h.Breakdown(usecases.BreakdownConsumedTags, constants.TopTagsLimit))
		dmo.GET("/last_payments", h.LastPayments)
		dmo.GET("/offers", h.ListOffers)
		dmo.GET("/total_number_of_offers", h.Indicator(usecases.IndicatorTotalOffers))
		dmo.GET("/total_number_of_offers_variation_since_30_days_ago", h.Indicator(usecases.IndicatorTotalOffersVs30DaysAgo))
		dmo.GET("/total_number_of_offers_variation_since_last_month", h.Indicator(usecases.IndicatorTotalOffersVsLastMonth))
		dmo.GET("/new_offers_this_month", h.Indicator(usecases.IndicatorNewOffersThisMonth))
		dmo.GET("/number_of_offers_by_tag", h.Breakdown(usecases.BreakdownOfferTags, 0))
		dmo.GET("/analysis", h.GetAnalysis)
		dmo.GET("/prediction", h.GetPrediction)
	}

	provider := api.Group("/provider")
	provider.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireScope(cfg.RequiredScope))
	{
		provider.GET("/payments", h.ListPayments)
		provider.GET("/number_of_payments_by_nationality", h.Breakdown(usecases.BreakdownNationality, 0))
		provider.GET("/profit_this_month", h.Indicator(usecases.IndicatorProfitThisMonth))
		provider.GET("/profit_comparison_with_previous_month", h.Indicator(usecases.IndicatorProfitVsPreviousMonth))
		provider.GET("/number_of_sales_this_month", h.Indicator(usecases.IndicatorSalesThisMonth))
		provider.GET("/number_of_sales_comparison_with_previous_month", h.Indicator(usecases.IndicatorSalesVsPreviousMonth))
		provider.GET("/most_consumed_tags", h.Breakdown(usecases.BreakdownConsumedTags, constants.TopTagsLimit))
		provider.GET("/last_payments", h.LastPayments)
		provider.GET("/number_of_offers", h.Indicator(usecases.IndicatorTotalOffers))
		provider.GET("/analysis", h.GetAnalysis)
		provider.GET("/prediction", h.GetPrediction)
	}
}
