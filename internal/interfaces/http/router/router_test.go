package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/motoworld/storefront/internal/infrastructure/auth"
	"github.com/motoworld/storefront/internal/infrastructure/config"
	"github.com/motoworld/storefront/internal/infrastructure/persistence"
	"github.com/motoworld/storefront/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter builds the full route table with empty handlers. The
// protected routes never reach a handler in these tests, so nil
// services are fine.
func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
	})

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.HTTP.MaxBodySize = 1 << 20

	engine := New(Dependencies{
		Config:     cfg,
		Logger:     zap.NewNop(),
		JWTService: jwtService,

		System:   handler.NewSystemHandler(&persistence.Database{}, "storefront-test", "0.0.0"),
		Auth:     handler.NewAuthHandler(nil),
		Category: handler.NewCategoryHandler(nil),
		Product:  handler.NewProductHandler(nil),
		Cart:     handler.NewCartHandler(nil),
		Order:    handler.NewOrderHandler(nil),
		Review:   handler.NewReviewHandler(nil, nil),
	})
	return engine, jwtService
}

func TestNew_RegistersRoutesWithoutConflict(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront-test")
}

func TestNew_ProtectedRoutesRequireAuth(t *testing.T) {
	engine, _ := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/auth/profile"},
		{http.MethodGet, "/api/v1/admin/orders"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestNew_AdminRoutesRefuseCustomers(t *testing.T) {
	engine, jwtService := newTestRouter(t)

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "marta",
		Role:     "customer",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestNew_RequestIDHeaderSet(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
