package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/pencil-api/internal/mocks"
	"github.com/jsamuelsen/pencil-api/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedCounts struct{ quotes, users, collections int }

func (f fixedCounts) Counts() (int, int, int) { return f.quotes, f.users, f.collections }

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2026-01-15T10:00:00Z")

	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, "2026-01-15T10:00:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestHealthHandler_Liveness(t *testing.T) {
	handler := NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/-/live", nil)

	handler.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		result     *ports.HealthResult
		wantStatus int
		wantBody   string
	}{
		{
			name: "all checks healthy",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{
					"datastore":   {Status: ports.HealthStatusHealthy},
					"credentials": {Status: ports.HealthStatusHealthy},
				},
			},
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
		{
			name: "data directory not writable",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"datastore": {Status: ports.HealthStatusUnhealthy, Message: "permission denied"},
				},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result)

			handler := NewHealthHandler(registry, BuildInfo{}, nil)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/-/ready", nil)

			handler.Readiness(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHealthHandler_BuildInfoHandler(t *testing.T) {
	bi := BuildInfo{Version: "1.2.3", Commit: "def456", BuildTime: "2026-02-01T12:00:00Z", GoVersion: "go1.25.7"}
	handler := NewHealthHandler(mocks.NewMockHealthRegistry(t), bi, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/-/build", nil)

	handler.BuildInfoHandler(c)

	var got BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, bi, got)
}

func TestHealthHandler_Stats(t *testing.T) {
	handler := NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, fixedCounts{quotes: 3, users: 2, collections: 1})

	router := gin.New()
	handler.RegisterHealthRoutesOnEngine(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"quotes":3,"users":2,"collections":1}`, w.Body.String())
}

func TestMetricsHandler(t *testing.T) {
	w := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestHealthHandler_RegisterHealthRoutes(t *testing.T) {
	routesOf := func(h *HealthHandler) map[string]bool {
		router := gin.New()
		h.RegisterHealthRoutesOnEngine(router)

		out := make(map[string]bool)
		for _, r := range router.Routes() {
			out[r.Method+" "+r.Path] = true
		}

		return out
	}

	withoutCounter := routesOf(NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, nil))
	for _, want := range []string{"GET /-/live", "GET /-/ready", "GET /-/build", "GET /-/metrics"} {
		assert.True(t, withoutCounter[want], "missing route: %s", want)
	}
	assert.False(t, withoutCounter["GET /-/stats"])

	withCounter := routesOf(NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, fixedCounts{}))
	assert.True(t, withCounter["GET /-/stats"])
}
