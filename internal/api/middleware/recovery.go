package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/rs/zerolog"
)

// Recovery turns handler panics into 500 problem responses so a single bad
// request cannot take the process down. Pooled database connections are
// released by their own defers before the panic reaches here.
func Recovery(env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					zerolog.Ctx(r.Context()).Error().
						Str("panic", fmt.Sprintf("%v", rec)).
						Str("stack", string(debug.Stack())).
						Str("path", r.URL.Path).
						Str("method", r.Method).
						Msg("panic recovered")
					problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.app/problems/server-error", "Server error", nil, env)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
