package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSeek(t *testing.T) {
	before := testutil.ToFloat64(SeeksTotal.WithLabelValues(SimulatorGacha, ResultCancelled))
	ObserveSeek(SimulatorGacha, false, true, 300)
	after := testutil.ToFloat64(SeeksTotal.WithLabelValues(SimulatorGacha, ResultCancelled))
	assert.Equal(t, before+1, after)

	before = testutil.ToFloat64(SeeksTotal.WithLabelValues(SimulatorEnchant, ResultFound))
	ObserveSeek(SimulatorEnchant, true, false, 12)
	assert.Equal(t, before+1, testutil.ToFloat64(SeeksTotal.WithLabelValues(SimulatorEnchant, ResultFound)))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/sessions/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/sessions/{id}", "418")))
}
