package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/infrastructure/auth"
	"github.com/orris-inc/monitor/internal/infrastructure/config"
	"github.com/orris-inc/monitor/internal/infrastructure/migration"
	sharedConfig "github.com/orris-inc/monitor/internal/shared/config"
	"github.com/orris-inc/monitor/internal/shared/constants"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

const testSecret = "router-test-secret"

const trendBody = `{"interest_over_time": {"timeline_data": [
  {"date": "1", "values": [{"extracted_value": 40}]},
  {"date": "2", "values": [{"extracted_value": 50}]},
  {"date": "3", "values": [{"extracted_value": 45}]},
  {"date": "4", "values": [{"extracted_value": 60}]}
]}}`

func init() {
	gin.SetMode(gin.TestMode)
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type string `json:"type"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise open its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migration.NewManagerWithStrategy(migration.NewGormAutoMigrateStrategy()).Migrate(db))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	serp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(trendBody))
	}))
	t.Cleanup(serp.Close)

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Auth: sharedConfig.AuthConfig{JWT: sharedConfig.JWTConfig{
			Secret:        testSecret,
			RequiredScope: constants.ScopeProvider,
		}},
		Trends: sharedConfig.TrendsConfig{
			BaseURL:    serp.URL,
			SearchTerm: "Aveiro",
			Timeout:    time.Second,
		},
		RateLimit: sharedConfig.RateLimitConfig{
			Enabled:           true,
			RequestsPerWindow: 1000,
			Window:            time.Minute,
		},
	}

	container, err := NewContainer(cfg, db, redisClient, logger.NewNopLogger())
	require.NoError(t, err)
	seed(t, container.RecordRepository())

	router := NewRouter(container)
	router.SetupRoutes()
	return router
}

func seed(t *testing.T, repo analytics.RecordRepository) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	offers := []analytics.Offer{
		{ID: "o1", OwnerID: "alice", Tags: []string{"beach"}, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "o2", OwnerID: "bob", Tags: []string{"museum"}, CreatedAt: now.Add(-time.Hour)},
	}
	for i := range offers {
		require.NoError(t, repo.AppendOffer(ctx, &offers[i]))
	}

	payments := []analytics.Payment{
		{OfferID: "o1", Amount: decimal.RequireFromString("10.50"), Nationality: "PT", Timestamp: now.Add(-30 * time.Minute)},
		{OfferID: "o2", Amount: decimal.RequireFromString("20.00"), Nationality: "ES", Timestamp: now.Add(-20 * time.Minute)},
	}
	for i := range payments {
		require.NoError(t, repo.AppendPayment(ctx, &payments[i]))
	}
}

func do(t *testing.T, router *Router, path, token string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.GetEngine().ServeHTTP(w, req)

	var resp apiResponse
	if w.Header().Get("Content-Type") != "" && w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestRouter_PublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	t.Run("health", func(t *testing.T) {
		w, resp := do(t, router, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})

	t.Run("total offers", func(t *testing.T) {
		w, resp := do(t, router, "/api/monitor/dmo/total_number_of_offers", "")
		require.Equal(t, http.StatusOK, w.Code)

		var indicator struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &indicator))
		assert.Equal(t, "total_number_of_offers", indicator.Name)
		assert.Equal(t, "2", indicator.Value)
	})

	t.Run("payments", func(t *testing.T) {
		w, resp := do(t, router, "/api/monitor/dmo/payments", "")
		require.Equal(t, http.StatusOK, w.Code)

		var payments []map[string]any
		require.NoError(t, json.Unmarshal(resp.Data, &payments))
		assert.Len(t, payments, 2)
	})

	t.Run("analysis", func(t *testing.T) {
		w, resp := do(t, router, "/api/monitor/dmo/analysis?x=hour&y=num_payments", "")
		require.Equal(t, http.StatusOK, w.Code)

		var series struct {
			Buckets []struct {
				Label string  `json:"label"`
				Value float64 `json:"value"`
			} `json:"buckets"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &series))
		assert.Len(t, series.Buckets, 24)
	})

	t.Run("invalid key", func(t *testing.T) {
		w, resp := do(t, router, "/api/monitor/dmo/analysis?x=week&y=profit", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
	})

	t.Run("prediction", func(t *testing.T) {
		w, resp := do(t, router, "/api/monitor/dmo/prediction?x=day&y=num_payments", "")
		require.Equal(t, http.StatusOK, w.Code)

		var prediction struct {
			Trend struct {
				Window string `json:"window"`
			} `json:"trend"`
			Predictions []json.RawMessage `json:"predictions"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &prediction))
		assert.Equal(t, "short", prediction.Trend.Window)
		assert.NotEmpty(t, prediction.Predictions)
	})

	t.Run("metrics", func(t *testing.T) {
		w, _ := do(t, router, "/metrics", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "monitor_http_requests_total")
	})
}

func TestRouter_ProviderRoutes(t *testing.T) {
	router := newTestRouter(t)
	jwtSvc := auth.NewJWTService(testSecret)

	aliceToken, err := jwtSvc.Generate("alice", []string{constants.ScopeProvider}, time.Hour)
	require.NoError(t, err)
	unscopedToken, err := jwtSvc.Generate("alice", nil, time.Hour)
	require.NoError(t, err)

	t.Run("requires token", func(t *testing.T) {
		w, _ := do(t, router, "/api/monitor/provider/payments", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires scope", func(t *testing.T) {
		w, _ := do(t, router, "/api/monitor/provider/payments", unscopedToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("scoped to owner", func(t *testing.T) {
		w, resp := do(t, router, "/api/monitor/provider/payments", aliceToken)
		require.Equal(t, http.StatusOK, w.Code)

		var payments []struct {
			OfferID string `json:"offer_id"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &payments))
		require.Len(t, payments, 1)
		assert.Equal(t, "o1", payments[0].OfferID)
	})

	t.Run("number of offers", func(t *testing.T) {
		w, resp := do(t, router, "/api/monitor/provider/number_of_offers", aliceToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(resp.Data), `"value":"1"`)
	})

	t.Run("offer metrics are not exposed", func(t *testing.T) {
		w, resp := do(t, router, "/api/monitor/provider/analysis?x=day&y=new_offers", aliceToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "bad_request", resp.Error.Type)
	})
}
