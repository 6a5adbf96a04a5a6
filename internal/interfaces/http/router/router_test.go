package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasmey/backend/internal/infrastructure/auth"
	"github.com/jasmey/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "router-test",
	})
}

func TestNewRouterDefaults(t *testing.T) {
	engine := gin.New()
	r := New(engine, Handlers{}, testJWTService())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
}

func TestWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := New(engine, Handlers{}, testJWTService(), WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := gin.New()
	New(engine, Handlers{}, testJWTService()).Setup()

	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/orders"},
		{"GET", "/api/v1/orders"},
		{"GET", "/api/v1/orders/00000000-0000-0000-0000-000000000001"},
		{"POST", "/api/v1/orders/00000000-0000-0000-0000-000000000001/cancel"},
		{"POST", "/api/v1/products"},
		{"GET", "/api/v1/admin/orders"},
		{"PUT", "/api/v1/admin/stock/00000000-0000-0000-0000-000000000001"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s should require auth", tt.method, tt.path)
	}
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	jwtService := testJWTService()
	engine := gin.New()
	New(engine, Handlers{}, jwtService).Setup()

	token, _, err := jwtService.GenerateToken("user-1", "Asha", auth.RoleCustomer)
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/products"},
		{"DELETE", "/api/v1/products/00000000-0000-0000-0000-000000000001"},
		{"GET", "/api/v1/admin/orders"},
		{"GET", "/api/v1/admin/stock/low"},
		{"PATCH", "/api/v1/admin/orders/00000000-0000-0000-0000-000000000001/status"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s should be admin-only", tt.method, tt.path)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	engine := gin.New()
	New(engine, Handlers{}, testJWTService()).Setup()

	req := httptest.NewRequest("GET", "/api/v1/nope", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
