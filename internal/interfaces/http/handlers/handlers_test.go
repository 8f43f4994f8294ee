package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizcomply/bizcomply/internal/application/dto"
	appservice "github.com/bizcomply/bizcomply/internal/application/service"
	"github.com/bizcomply/bizcomply/internal/config"
	"github.com/bizcomply/bizcomply/internal/infrastructure/audit"
	"github.com/bizcomply/bizcomply/internal/infrastructure/cache"
	"github.com/bizcomply/bizcomply/internal/infrastructure/monitoring"
	"github.com/bizcomply/bizcomply/internal/infrastructure/persistence/postgres"
	"github.com/bizcomply/bizcomply/internal/interfaces/http/handlers"
	"github.com/bizcomply/bizcomply/internal/interfaces/http/router"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

var apiTestCounter int

// newTestServer stands up the full HTTP stack on an in-memory database with
// the seeded corpus.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	apiTestCounter++
	dbCfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:api_test_%d?mode=memory&cache=shared", apiTestCounter),
	}

	log := logger.NewNoop()
	ctx := context.Background()

	conn, err := postgres.NewDBConnection(ctx, dbCfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.Migrate(ctx))
	require.NoError(t, postgres.NewSeeder(conn.DB(), log).Seed(ctx))

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)
	cacheManager := cache.NewManager(cache.NewMemoryStore(time.Minute, metrics), time.Minute)

	businessRepo := postgres.NewBusinessRepository(conn.DB(), log)
	regulationRepo := postgres.NewRegulationRepository(conn.DB(), log)
	complianceRepo := postgres.NewComplianceRepository(conn.DB(), log)

	complianceSvc := appservice.NewComplianceAppService(
		businessRepo, regulationRepo, complianceRepo,
		cacheManager, audit.NewNoopPublisher(), metrics, log,
	)

	return router.New(&config.ServerConfig{}, log, metrics, registry, router.Handlers{
		Compliance: handlers.NewComplianceHandler(complianceSvc),
		Business:   handlers.NewBusinessHandler(appservice.NewBusinessAppService(businessRepo, log)),
		Regulation: handlers.NewRegulationHandler(appservice.NewRegulationAppService(regulationRepo, cacheManager, log)),
		Health:     handlers.NewHealthHandler(conn, cacheManager, "test"),
	})
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func validBusinessPayload() map[string]any {
	return map[string]any{
		"name":          "Sierra Tech Solutions",
		"industry":      "Technology",
		"state":         "CA",
		"county":        "Kern",
		"city":          "Bakersfield",
		"zipCode":       "93301",
		"size":          "Small",
		"employeeCount": 8,
		"annualRevenue": 500000,
		"businessType":  "LLC",
	}
}

func TestComplianceCheckEndpoint(t *testing.T) {
	engine := newTestServer(t)

	t.Run("valid profile", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodPost, "/api/v1/compliance/check", validBusinessPayload())
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp dto.ComplianceCheckResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

		assert.GreaterOrEqual(t, resp.ComplianceScore, 0)
		assert.LessOrEqual(t, resp.ComplianceScore, 100)
		assert.NotEmpty(t, resp.RiskLevel)
		assert.LessOrEqual(t, len(resp.NextDeadlines), 5)
		assert.NotEmpty(t, resp.Recommendations)
		assert.NotEmpty(t, resp.ApplicableRegulations)
	})

	t.Run("small business floor", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodPost, "/api/v1/compliance/check", validBusinessPayload())
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp dto.ComplianceCheckResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.GreaterOrEqual(t, resp.ComplianceScore, 75)
	})

	t.Run("invalid employee count", func(t *testing.T) {
		payload := validBusinessPayload()
		payload["employeeCount"] = 20000
		recorder := doJSON(t, engine, http.MethodPost, "/api/v1/compliance/check", payload)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "validation_error")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/compliance/check", bytes.NewBufferString("{not json"))
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestBusinessLifecycleEndpoints(t *testing.T) {
	engine := newTestServer(t)

	recorder := doJSON(t, engine, http.MethodPost, "/api/v1/businesses", validBusinessPayload())
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created dto.BusinessResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	t.Run("get", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/businesses/%d", created.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("save and history", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/compliance/%d/save", created.ID), nil)
		require.Equal(t, http.StatusCreated, recorder.Code)

		recorder = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/compliance/%d/history", created.ID), nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var history dto.ComplianceHistoryResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &history))
		assert.Len(t, history.History, 1)

		recorder = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/compliance/%d/regulations", created.ID), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("history for missing business", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, "/api/v1/compliance/99999/history", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("update and delete", func(t *testing.T) {
		payload := validBusinessPayload()
		payload["employeeCount"] = 12
		recorder := doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/businesses/%d", created.ID), payload)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/v1/businesses/%d", created.ID), nil)
		assert.Equal(t, http.StatusNoContent, recorder.Code)

		recorder = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/businesses/%d", created.ID), nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestRegulationEndpoints(t *testing.T) {
	engine := newTestServer(t)

	t.Run("list", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, "/api/v1/regulations?category=Workplace+Safety", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp dto.RegulationListResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Regulations)
		for _, reg := range resp.Regulations {
			assert.Equal(t, "Workplace Safety", reg.Category)
		}
	})

	t.Run("detail", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, "/api/v1/regulations/1", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("categories", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, "/api/v1/regulations/meta/categories", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, "/api/v1/regulations/abc", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestOperationalEndpoints(t *testing.T) {
	engine := newTestServer(t)

	t.Run("liveness", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("readiness", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, "/health/ready", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "ready")
	})

	t.Run("metrics", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, "/metrics", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		recorder := doJSON(t, engine, http.MethodGet, "/api/v1/nope", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "route not found")
	})

	t.Run("request id echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "test-correlation-id")
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)
		assert.Equal(t, "test-correlation-id", recorder.Header().Get("X-Request-ID"))
	})
}
