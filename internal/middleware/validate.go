package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bariskara/product-api/internal/api/httpx"
	"github.com/bariskara/product-api/internal/api/validate"
)

type bodyKey struct{}

// Body returns the validated, coerced request body attached by ValidateBody.
func Body(ctx context.Context) map[string]any {
	if m, ok := ctx.Value(bodyKey{}).(map[string]any); ok {
		return m
	}
	return nil
}

// ValidateBody decodes the JSON body and checks it against the schema.
// All field violations are reported together in one 400 response; on
// success the coerced value replaces the raw body for downstream handlers.
func ValidateBody(schema validate.Schema) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := map[string]any{}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
				httpx.Error(w, http.StatusBadRequest, "Invalid request body", nil)
				return
			}

			clean, errs := schema.Validate(body)
			if len(errs) > 0 {
				httpx.Error(w, http.StatusBadRequest, errs.Error(), errs.Messages())
				return
			}

			ctx := context.WithValue(r.Context(), bodyKey{}, clean)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
