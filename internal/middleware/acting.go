// Package middleware provides HTTP middleware for the acting identity and
// destructive-action confirmation.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/samhotchkiss/sindicato-comms/internal/models"
)

// ContextKey is the type for context keys in this package.
type ContextKey string

const (
	// ActingSecretariatKey is the context key for the secretariat the session acts as.
	ActingSecretariatKey ContextKey = "acting_secretariat"
)

// ActingFromContext retrieves the acting secretariat from the request context.
// Returns empty string if not set.
func ActingFromContext(ctx context.Context) models.Secretariat {
	if v := ctx.Value(ActingSecretariatKey); v != nil {
		if acting, ok := v.(models.Secretariat); ok {
			return acting
		}
	}
	return ""
}

// WithActing returns a copy of ctx carrying acting.
func WithActing(ctx context.Context, acting models.Secretariat) context.Context {
	return context.WithValue(ctx, ActingSecretariatKey, acting)
}

// ActingSecretariat resolves the acting secretariat once per request so a
// handler sees a single identity even if the session changes mid-request.
func ActingSecretariat(current func() models.Secretariat) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithActing(r.Context(), current())))
		})
	}
}

// RequireConfirmation rejects DELETE requests that do not carry
// ?confirm=true with 409 Conflict. Other methods pass through.
func RequireConfirmation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && !confirmed(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":"confirmation required: repeat the request with ?confirm=true"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func confirmed(r *http.Request) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("confirm"))) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
