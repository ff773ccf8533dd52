package middleware

import (
	"context"
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/auth"
	"github.com/rs/zerolog"
)

type contextKeyIdentity string

const identityKey contextKeyIdentity = "identity"

// BearerAuth gates protected routes behind a verified bearer token. The
// Authorization header is parsed and verified exactly once here; the
// resulting identity is attached to the request context for every
// downstream consumer (handlers and GraphQL resolvers alike), so no layer
// re-verifies the token.
func BearerAuth(tokens *auth.TokenService, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokens == nil {
				problem.Write(w, r, http.StatusUnauthorized, "https://gatherly.app/problems/unauthorized", "Unauthorized", problem.ErrUnauthorized, env)
				return
			}

			identity, err := auth.ExtractIdentity(r.Header.Get("Authorization"), tokens)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, "https://gatherly.app/problems/unauthorized", "Unauthorized", err, env)
				return
			}

			zerolog.Ctx(r.Context()).Info().
				Str("subject_id", identity.SubjectID).
				Str("path", r.URL.Path).
				Msg("authenticated request")

			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ContextWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the verified identity stored by BearerAuth, or false
// when the request never passed through the auth gate.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
