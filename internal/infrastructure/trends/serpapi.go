package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/infrastructure/metrics"
	"github.com/orris-inc/monitor/internal/shared/config"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

const (
	serpAPIEngine = "google_trends"
	// Maximum response body size for the trends API (2MB)
	maxTrendsResponseSize = 2 << 20

	defaultTimeout   = 10 * time.Second
	defaultCacheSize = 64
	defaultCacheTTL  = 10 * time.Minute
)

// windowDates maps trend windows to SerpAPI date ranges.
var windowDates = map[analytics.TrendWindow]string{
	analytics.ShortWindow: "today 1-m",
	analytics.LongWindow:  "today 3-m",
}

type serpAPIResponse struct {
	Error            string `json:"error"`
	InterestOverTime *struct {
		TimelineData []struct {
			Values []struct {
				ExtractedValue *int `json:"extracted_value"`
			} `json:"values"`
		} `json:"timeline_data"`
	} `json:"interest_over_time"`
}

// SerpAPIClient fetches Google Trends interest series through SerpAPI.
type SerpAPIClient struct {
	baseURL    string
	apiKey     string
	category   string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	group      singleflight.Group
	cache      *expirable.LRU[string, []analytics.InterestPoint]
	logger     logger.Interface
}

// NewSerpAPIClient creates a trends client from config.
func NewSerpAPIClient(cfg config.TrendsConfig, logger logger.Interface) *SerpAPIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &SerpAPIClient{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		category: cfg.Category,
		timeout:  timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		cache:   expirable.NewLRU[string, []analytics.InterestPoint](cacheSize, nil, cacheTTL),
		logger:  logger,
	}
}

// FetchInterestSeries returns the interest series of term over window.
// Concurrent identical lookups share one upstream call.
func (c *SerpAPIClient) FetchInterestSeries(ctx context.Context, term string, window analytics.TrendWindow) ([]analytics.InterestPoint, error) {
	date, ok := windowDates[window]
	if !ok {
		return nil, fmt.Errorf("%w: unknown trend window %q", analytics.ErrExternalService, window)
	}

	key := term + "|" + date
	if points, ok := c.cache.Get(key); ok {
		metrics.RecordTrendFetch(window.String(), metrics.OutcomeHit)
		return slices.Clone(points), nil
	}

	result, err, shared := c.group.Do(key, func() (interface{}, error) {
		// the flight outlives any single caller
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		start := time.Now()
		points, err := c.fetch(fetchCtx, term, date)
		metrics.ObserveTrendFetch(window.String(), time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, points)
		return points, nil
	})
	if err != nil {
		metrics.RecordTrendFetch(window.String(), metrics.OutcomeError)
		c.logger.Warnw("failed to fetch interest series",
			"term", term,
			"window", window,
			"shared", shared,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", analytics.ErrExternalService, err)
	}

	metrics.RecordTrendFetch(window.String(), metrics.OutcomeFetch)
	return slices.Clone(result.([]analytics.InterestPoint)), nil
}

func (c *SerpAPIClient) fetch(ctx context.Context, term, date string) ([]analytics.InterestPoint, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("engine", serpAPIEngine)
	query.Set("q", term)
	query.Set("date", date)
	if c.category != "" {
		query.Set("cat", c.category)
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interest series: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var data serpAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxTrendsResponseSize)).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	points, err := data.points()
	if err != nil {
		return nil, err
	}

	c.logger.Debugw("fetched interest series",
		"term", term,
		"date", date,
		"points", len(points),
	)
	return points, nil
}

func (r *serpAPIResponse) points() ([]analytics.InterestPoint, error) {
	if r.Error != "" {
		return nil, fmt.Errorf("upstream error: %s", r.Error)
	}
	if r.InterestOverTime == nil {
		return nil, fmt.Errorf("response has no interest_over_time")
	}

	points := make([]analytics.InterestPoint, 0, len(r.InterestOverTime.TimelineData))
	for i, entry := range r.InterestOverTime.TimelineData {
		if len(entry.Values) == 0 || entry.Values[0].ExtractedValue == nil {
			return nil, fmt.Errorf("timeline entry %d has no extracted_value", i)
		}
		value := *entry.Values[0].ExtractedValue
		if value < 0 {
			return nil, fmt.Errorf("timeline entry %d has negative value %d", i, value)
		}
		points = append(points, analytics.InterestPoint{Index: i, Value: value})
	}
	return points, nil
}
