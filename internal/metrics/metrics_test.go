package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSuggestionRegeneration(t *testing.T) {
	before := testutil.ToFloat64(suggestionRegenerationsTotal.WithLabelValues("explicit", "ok"))
	RecordSuggestionRegeneration("explicit", 3*time.Millisecond, 4, nil)
	RecordSuggestionRegeneration("explicit", time.Millisecond, 0, errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(suggestionRegenerationsTotal.WithLabelValues("explicit", "ok")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(suggestionRegenerationsTotal.WithLabelValues("explicit", "error")), 1.0)
}

func TestObserveHTTPRequest(t *testing.T) {
	done := HTTPRequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequestsInFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(httpRequestsInFlight))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/barter/v1/listings/{id}", "404"))
	ObserveHTTPRequest("GET", "/barter/v1/listings/{id}", 404, 2*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/barter/v1/listings/{id}", "404")))
}

func TestRecordPlanDeniedAndEvents(t *testing.T) {
	RecordPlanDenied("exchange", "free")
	assert.GreaterOrEqual(t, testutil.ToFloat64(planDeniedTotal.WithLabelValues("exchange", "free")), 1.0)

	RecordDomainEvent("listing.created", nil)
	RecordDomainEvent("listing.created", errors.New("nack"))
	assert.GreaterOrEqual(t, testutil.ToFloat64(domainEventsTotal.WithLabelValues("listing.created", "error")), 1.0)

	SetSuggestionRefreshPending(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(suggestionRefreshPending))
}

func TestMetricsHandler_ExposesNamespace(t *testing.T) {
	RecordPlanDenied("message", "free")

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "barter_service_plan_denied_total"))
}
