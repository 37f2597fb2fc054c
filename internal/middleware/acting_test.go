package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActingFromContext(t *testing.T) {
	t.Run("returns empty string when not set", func(t *testing.T) {
		assert.Equal(t, models.Secretariat(""), ActingFromContext(context.Background()))
	})

	t.Run("returns secretariat when set", func(t *testing.T) {
		ctx := WithActing(context.Background(), models.SecretariatPostal)
		assert.Equal(t, models.SecretariatPostal, ActingFromContext(ctx))
	})

	t.Run("ignores values of another type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), ActingSecretariatKey, "Postal")
		assert.Equal(t, models.Secretariat(""), ActingFromContext(ctx))
	})
}

func TestActingSecretariat(t *testing.T) {
	calls := 0
	current := func() models.Secretariat {
		calls++
		return models.SecretariatCommunication
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(ActingFromContext(r.Context())))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/activities", nil)
	rec := httptest.NewRecorder()
	ActingSecretariat(current)(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Comunicación", rec.Body.String())
	assert.Equal(t, 1, calls)
}

func TestRequireConfirmation(t *testing.T) {
	reached := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name    string
		method  string
		target  string
		status  int
		reached bool
	}{
		{name: "delete without confirm", method: http.MethodDelete, target: "/api/contacts/j1", status: http.StatusConflict},
		{name: "delete with confirm=false", method: http.MethodDelete, target: "/api/contacts/j1?confirm=false", status: http.StatusConflict},
		{name: "delete with confirm", method: http.MethodDelete, target: "/api/contacts/j1?confirm=true", status: http.StatusNoContent, reached: true},
		{name: "put passes through", method: http.MethodPut, target: "/api/contacts/j1", status: http.StatusNoContent, reached: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()

			RequireConfirmation(handler).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.reached, reached)
			if tt.status == http.StatusConflict {
				assert.Contains(t, rec.Body.String(), "confirmation required")
			}
		})
	}
}
