package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountHandler "github.com/jwalitptl/clinic-admin/internal/handler/account"
	authHandler "github.com/jwalitptl/clinic-admin/internal/handler/auth"
	"github.com/jwalitptl/clinic-admin/internal/handler/health"
	itemHandler "github.com/jwalitptl/clinic-admin/internal/handler/item"
	promHandler "github.com/jwalitptl/clinic-admin/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-admin/internal/middleware"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	accountService "github.com/jwalitptl/clinic-admin/internal/service/account"
	billingService "github.com/jwalitptl/clinic-admin/internal/service/billing"
	"github.com/jwalitptl/clinic-admin/internal/store"
	"github.com/jwalitptl/clinic-admin/pkg/security"
)

func setupRouter(t *testing.T, requireAuth bool) *gin.Engine {
	t.Helper()

	backend := store.NewMemoryStore(nil)
	repos := repository.New(backend, repository.Options{})
	accounts := accountService.NewService(repos.Accounts, security.NewBcryptHasher(4), nil)
	require.NoError(t, accounts.Create(context.Background(), &model.Account{
		ID: 1, Name: "Admin", Email: "admin@clinic.com", Password: "secret", Enabled: true,
	}))

	prom := promHandler.New("clinic", prometheus.NewRegistry())
	r := NewRouter(
		middleware.NewAuthMiddleware(accounts),
		health.NewHandler(backend, prom.Handler()),
		authHandler.NewHandler(accounts),
		[]Handler{
			accountHandler.NewHandler(accounts),
			itemHandler.NewHandler(billingService.NewService(repos.Items, nil)),
		},
		RouterConfig{
			RequestTimeout: time.Second,
			RequireAuth:    requireAuth,
			CORSConfig:     middleware.DefaultCORSConfig(),
			Metrics:        prom.Middleware(),
		},
	)
	return r.Engine()
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	r := setupRouter(t, true)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.0", w.Header().Get("X-API-Version"))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/health/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `clinic_http_requests_total{method="GET",path="/api/v1/health/live",status="200"} 1`)
}

func TestProtectedRoutesRequireBasicAuth(t *testing.T) {
	r := setupRouter(t, true)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/items", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	req.SetBasicAuth("admin@clinic.com", "nope")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
	req.SetBasicAuth("admin@clinic.com", "secret")
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestLoginIsPublic(t *testing.T) {
	r := setupRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"correo": "admin@clinic.com", "clave": "secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "admin@clinic.com", data["correo"])
	assert.NotContains(t, data, "clave")

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"correo": "admin@clinic.com", "clave": "bad"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
}

func TestItemKindFilter(t *testing.T) {
	r := setupRouter(t, false)

	for _, body := range []string{
		`{"id_producto_servicio": 1, "tipo": "Servicio", "nombre": "Limpieza", "precio": 40}`,
		`{"id_producto_servicio": 2, "tipo": "Producto", "nombre": "Hilo dental", "precio": 3.5}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		require.Equal(t, http.StatusCreated, serve(r, req).Code)
	}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/items?kind=Producto", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Hilo dental", items[0].(map[string]interface{})["nombre"])

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/items?kind=Otro", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
