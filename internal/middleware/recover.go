package middleware

import (
	"log/slog"
	"net/http"

	"github.com/bariskara/product-api/internal/api/httpx"
)

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic", "err", rec, "path", r.URL.Path)
				httpx.Error(w, http.StatusInternalServerError, "An error occurred. Please try again", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
