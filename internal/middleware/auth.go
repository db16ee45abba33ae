package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bariskara/product-api/internal/api/httpx"
	"github.com/bariskara/product-api/internal/auth"
	"github.com/bariskara/product-api/internal/metrics"
)

type claimsKey struct{}

// ClaimsFrom returns the verified token claims attached by RequireAuth.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

type TokenGate struct {
	tm *auth.TokenManager
}

func NewTokenGate(tm *auth.TokenManager) *TokenGate {
	return &TokenGate{tm: tm}
}

// RequireAuth rejects requests without a bearer token (401) and requests
// whose token fails verification (403). Verified claims go into the context.
func (g *TokenGate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			metrics.AuthFailures.WithLabelValues("missing_token").Inc()
			httpx.Unauthorized(w, "")
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])
		if token == "" {
			metrics.AuthFailures.WithLabelValues("missing_token").Inc()
			httpx.Unauthorized(w, "")
			return
		}

		claims, err := g.tm.Verify(token)
		if err != nil {
			metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
			httpx.Forbidden(w)
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
