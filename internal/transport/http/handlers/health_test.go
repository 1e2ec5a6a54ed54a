package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("healthz_ignores_dependencies", func(t *testing.T) {
		h := NewHealthHandler(map[string]Pinger{"postgres": down})
		rec := httptest.NewRecorder()
		h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	tests := []struct {
		name     string
		deps     map[string]Pinger
		wantCode int
		want     map[string]string
	}{
		{"no_deps", nil, http.StatusOK, map[string]string{}},
		{"all_up", map[string]Pinger{"postgres": up, "redis": up}, http.StatusOK, map[string]string{"postgres": "up", "redis": "up"}},
		{"one_down", map[string]Pinger{"postgres": up, "redis": down}, http.StatusServiceUnavailable, map[string]string{"postgres": "up", "redis": "down"}},
	}
	for _, tt := range tests {
		t.Run("readyz_"+tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.deps)
			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var env struct {
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, tt.want, env.Data)
		})
	}
}
