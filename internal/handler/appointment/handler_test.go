package appointment

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
	"github.com/jwalitptl/clinic-admin/internal/service/appointment"
	"github.com/jwalitptl/clinic-admin/internal/store"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.New(store.NewMemoryStore(nil), repository.Options{})
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	NewHandler(appointment.NewService(repos.Appointments, nil, time.UTC), time.UTC).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestScheduleRescheduleCancel(t *testing.T) {
	r := setupRouter(t)

	w, _ := do(r, http.MethodPost, "/api/v1/appointments",
		`{"fecha_hora": "2024-03-04T09:00:00Z", "id_paciente": 7, "id_doctor": 3}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := do(r, http.MethodGet, "/api/v1/appointments?doctor_id=3&date=2024-03-04", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)

	w, _ = do(r, http.MethodPost, "/api/v1/appointments/reschedule", `{
		"key": {"fecha_hora": "2024-03-04T09:00:00Z", "id_paciente": 7, "id_doctor": 3},
		"update": {"fecha_hora": "2024-03-05T11:00:00Z"}
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	_, resp = do(r, http.MethodGet, "/api/v1/appointments?date=2024-03-04", "")
	assert.Empty(t, resp["data"])
	_, resp = do(r, http.MethodGet, "/api/v1/appointments?patient_id=7&date=2024-03-05", "")
	assert.Len(t, resp["data"], 1)

	// The old key no longer matches anything.
	w, _ = do(r, http.MethodPost, "/api/v1/appointments/cancel",
		`{"fecha_hora": "2024-03-04T09:00:00Z", "id_paciente": 7, "id_doctor": 3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(r, http.MethodPost, "/api/v1/appointments/cancel",
		`{"fecha_hora": "2024-03-05T11:00:00Z", "id_paciente": 7, "id_doctor": 3}`)
	assert.Equal(t, http.StatusOK, w.Code)

	_, resp = do(r, http.MethodGet, "/api/v1/appointments", "")
	assert.Empty(t, resp["data"])
}

func TestListRejectsMalformedDate(t *testing.T) {
	r := setupRouter(t)
	w, _ := do(r, http.MethodGet, "/api/v1/appointments?date=2024/03/04", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
