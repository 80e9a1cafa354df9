// Package analytics serves the dashboard and provider read endpoints.
package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/monitor/internal/application/analytics/dto"
	"github.com/orris-inc/monitor/internal/application/analytics/usecases"
	"github.com/orris-inc/monitor/internal/shared/constants"
	"github.com/orris-inc/monitor/internal/shared/logger"
	"github.com/orris-inc/monitor/internal/shared/utils"
)

// Handler serves both route groups. Requests that passed the auth middleware
// are answered from the caller's own records; the rest see every record.
type Handler struct {
	getSeriesUC          getSeriesUseCase
	getPredictionUC      getPredictionUseCase
	getIndicatorUC       getIndicatorUseCase
	getBreakdownUC       getBreakdownUseCase
	listPaymentsUC       listPaymentsUseCase
	listRecentPaymentsUC listRecentPaymentsUseCase
	listOffersUC         listOffersUseCase
	logger               logger.Interface
}

func NewHandler(
	getSeriesUC getSeriesUseCase,
	getPredictionUC getPredictionUseCase,
	getIndicatorUC getIndicatorUseCase,
	getBreakdownUC getBreakdownUseCase,
	listPaymentsUC listPaymentsUseCase,
	listRecentPaymentsUC listRecentPaymentsUseCase,
	listOffersUC listOffersUseCase,
	logger logger.Interface,
) *Handler {
	return &Handler{
		getSeriesUC:          getSeriesUC,
		getPredictionUC:      getPredictionUC,
		getIndicatorUC:       getIndicatorUC,
		getBreakdownUC:       getBreakdownUC,
		listPaymentsUC:       listPaymentsUC,
		listRecentPaymentsUC: listRecentPaymentsUC,
		listOffersUC:         listOffersUC,
		logger:               logger,
	}
}

func scopeFrom(c *gin.Context) usecases.Scope {
	return usecases.OwnerScope(c.GetString(constants.ContextKeyUserID))
}

// GetAnalysis handles GET /analysis?x=<granularity>&y=<metric>.
func (h *Handler) GetAnalysis(c *gin.Context) {
	var query dto.AnalysisQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "query parameters x and y are required")
		return
	}
	if err := utils.ValidateStruct(&query); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getSeriesUC.Execute(c.Request.Context(), usecases.GetSeriesQuery{
		Scope:       scopeFrom(c),
		Granularity: query.Granularity,
		Metric:      query.Metric,
	})
	if err != nil {
		h.logger.Warnw("failed to build series", "x", query.Granularity, "y", query.Metric, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetPrediction handles GET /prediction?x=<granularity>&y=<metric>.
func (h *Handler) GetPrediction(c *gin.Context) {
	var query dto.AnalysisQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "query parameters x and y are required")
		return
	}
	if err := utils.ValidateStruct(&query); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPredictionUC.Execute(c.Request.Context(), usecases.GetPredictionQuery{
		Scope:       scopeFrom(c),
		Granularity: query.Granularity,
		Metric:      query.Metric,
	})
	if err != nil {
		h.logger.Warnw("failed to build prediction", "x", query.Granularity, "y", query.Metric, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Indicator returns a handler that reports one scalar indicator.
func (h *Handler) Indicator(indicator usecases.Indicator) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.getIndicatorUC.Execute(c.Request.Context(), usecases.GetIndicatorQuery{
			Scope:     scopeFrom(c),
			Indicator: indicator,
		})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "", result)
	}
}

// Breakdown returns a handler that reports category counts, keeping at most
// limit entries when limit is positive.
func (h *Handler) Breakdown(breakdown usecases.Breakdown, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.getBreakdownUC.Execute(c.Request.Context(), usecases.GetBreakdownQuery{
			Scope:     scopeFrom(c),
			Breakdown: breakdown,
			Limit:     limit,
		})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		utils.SuccessResponse(c, http.StatusOK, "", result)
	}
}

func (h *Handler) ListPayments(c *gin.Context) {
	result, err := h.listPaymentsUC.Execute(c.Request.Context(), scopeFrom(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) LastPayments(c *gin.Context) {
	result, err := h.listRecentPaymentsUC.Execute(c.Request.Context(), scopeFrom(c), constants.RecentPaymentsN)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *Handler) ListOffers(c *gin.Context) {
	result, err := h.listOffersUC.Execute(c.Request.Context(), scopeFrom(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
