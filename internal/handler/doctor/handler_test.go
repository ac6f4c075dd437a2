package doctor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-admin/internal/middleware"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/doctor"
	"github.com/jwalitptl/clinic-admin/internal/store"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.New(store.NewMemoryStore(nil), repository.Options{})
	svc := doctor.NewService(repos.Doctors, nil, time.UTC)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	NewHandler(svc, time.UTC).RegisterRoutes(r.Group("/api/v1"))

	body := `{
		"id_doctor": 3,
		"nombre": "Dra. Ruiz",
		"especialidad": "Odontología",
		"horario": [
			{"dia": "Lunes", "hora_inicio": "08:00", "hora_fin": "12:00"},
			{"dia": "Miércoles", "hora_inicio": "14:00", "hora_fin": "18:00"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	return r
}

func get(r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestAvailabilityUsesWeekdayOfDate(t *testing.T) {
	r := setupRouter(t)

	// 2024-03-04 is a Monday, 2024-03-05 a Tuesday.
	w, resp := get(r, "/api/v1/doctors/available?date=2024-03-04")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)

	w, resp = get(r, "/api/v1/doctors/available?date=2024-03-05")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["data"])

	w, resp = get(r, "/api/v1/doctors/3/availability?date=2024-03-06")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["data"].(map[string]interface{})["available"])

	w, resp = get(r, "/api/v1/doctors/99/availability?date=2024-03-06")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["data"].(map[string]interface{})["available"])
}

func TestAvailabilityRequiresDate(t *testing.T) {
	r := setupRouter(t)

	w, _ := get(r, "/api/v1/doctors/available")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = get(r, "/api/v1/doctors/available?date=Lunes")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCountAndGet(t *testing.T) {
	r := setupRouter(t)

	w, resp := get(r, "/api/v1/doctors/count")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, resp["data"].(map[string]interface{})["count"])

	w, resp = get(r, "/api/v1/doctors/3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Odontología", resp["data"].(map[string]interface{})["especialidad"])

	w, _ = get(r, "/api/v1/doctors/4")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
