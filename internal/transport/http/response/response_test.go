package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/domain"
	appctx "github.com/baechuer/real-time-ressys/services/barter-service/internal/pkg/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not_found", domain.ErrNotFound("listing missing"), http.StatusNotFound, "not_found"},
		{"validation", domain.ErrValidation("invalid title"), http.StatusBadRequest, "validation_error"},
		{"forbidden", domain.ErrForbidden("no access"), http.StatusForbidden, "forbidden"},
		{"invalid_state", domain.ErrInvalidState("already validated"), http.StatusConflict, "invalid_state"},
		{"plan_limit", domain.ErrPlanLimit("exchange", domain.PlanFree), http.StatusPaymentRequired, "plan_limit"},
		{"wrapped", errors.Join(errors.New("ctx"), domain.ErrNotFound("x")), http.StatusNotFound, "not_found"},
		{"generic_error", errors.New("db crash"), http.StatusInternalServerError, "internal_error"},
		{"nil_error", nil, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			req = req.WithContext(appctx.WithRequestID(req.Context(), "req-1"))

			Err(rr, req, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, "req-1", body.Error.RequestID)
		})
	}

	t.Run("internal_detail_not_leaked", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Err(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=hunter2"))
		assert.NotContains(t, rr.Body.String(), "hunter2")
	})
}

func TestData(t *testing.T) {
	rr := httptest.NewRecorder()
	Data(rr, http.StatusOK, map[string]string{"id": "123"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	dataMap := env.Data.(map[string]any)
	assert.Equal(t, "123", dataMap["id"])
}
