package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrumentHandlerLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/api/users/{id}/logs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/users/{id}/logs", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/abc/logs", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/xyz/logs", nil))

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/users/{id}/logs", "418"))
	assert.Equal(t, before+2, after)
	assert.Zero(t, testutil.ToFloat64(httpInFlight))
}

func TestRecorders(t *testing.T) {
	users := testutil.ToFloat64(usersCreated)
	RecordUserCreated()
	assert.Equal(t, users+1, testutil.ToFloat64(usersCreated))

	exercises := testutil.ToFloat64(exercisesLogged)
	RecordExerciseLogged()
	assert.Equal(t, exercises+1, testutil.ToFloat64(exercisesLogged))

	conflicts := testutil.ToFloat64(outcomes.WithLabelValues("create_user", "conflict"))
	RecordOutcome("create_user", "conflict")
	assert.Equal(t, conflicts+1, testutil.ToFloat64(outcomes.WithLabelValues("create_user", "conflict")))

	failed := testutil.ToFloat64(maintenanceRuns.WithLabelValues("false"))
	RecordMaintenance(false)
	assert.Equal(t, failed+1, testutil.ToFloat64(maintenanceRuns.WithLabelValues("false")))
}

func TestHandlerServesRegistry(t *testing.T) {
	RecordLogQuery(3)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "exercise_tracker_logs_records_returned")
}
