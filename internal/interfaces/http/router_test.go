package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/dashboard"
	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FreonTrack-Compliance/internal/interfaces/http/handlers"
	"github.com/turtacn/FreonTrack-Compliance/internal/interfaces/http/middleware"
)

type fakeDashboardService struct{}

func (fakeDashboardService) Overview(ctx context.Context) (*dashboard.Overview, error) {
	return &dashboard.Overview{}, nil
}

func testRouter(t *testing.T, authEnabled bool) http.Handler {
	t.Helper()
	log := logging.NewNopLogger()

	collector, err := prometheus.NewCollector(config.MetricsConfig{Namespace: "freontrack"}, log)
	require.NoError(t, err)

	auth := middleware.NewAuthMiddleware(config.AuthConfig{
		Enabled:      authEnabled,
		StaticTokens: map[string]string{"secret-token": "admin"},
	}, log)

	return NewRouter(RouterConfig{
		DashboardHandler: handlers.NewDashboardHandler(fakeDashboardService{}, log),
		HealthHandler:    handlers.NewHealthHandler("test"),
		AuthMiddleware:   auth,
		MetricsCollector: collector,
	})
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router := testRouter(t, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alive")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MetricsIsPublic(t *testing.T) {
	router := testRouter(t, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_APIRequiresAuth(t *testing.T) {
	router := testRouter(t, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_APIAcceptsToken(t *testing.T) {
	router := testRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AuthDisabledPassesThrough(t *testing.T) {
	router := testRouter(t, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_UnmountedRouteIs404(t *testing.T) {
	router := testRouter(t, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

//Personal.AI order the ending
