package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatherly/server/internal/auth"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)
	return tokens
}

func TestBearerAuthRequiresHeader(t *testing.T) {
	tokens := newTokenService(t)
	called := false
	h := BearerAuth(tokens, "test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	res := httptest.NewRecorder()

	h.ServeHTTP(res, req)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.False(t, called, "handler must not run without a token")
	require.Equal(t, "application/problem+json", res.Header().Get("Content-Type"))
}

func TestBearerAuthRejectsMalformedHeader(t *testing.T) {
	tokens := newTokenService(t)
	h := BearerAuth(tokens, "test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, header := range []string{"Bearer", "Basic abc", "garbage", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.Header.Set("Authorization", header)
		res := httptest.NewRecorder()

		h.ServeHTTP(res, req)
		require.Equalf(t, http.StatusUnauthorized, res.Code, "header %q", header)
	}
}

func TestBearerAuthRejectsInvalidToken(t *testing.T) {
	tokens := newTokenService(t)
	other, err := auth.NewTokenService("other-secret")
	require.NoError(t, err)
	foreign, err := other.Issue("user-1")
	require.NoError(t, err)

	h := BearerAuth(tokens, "test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	res := httptest.NewRecorder()

	h.ServeHTTP(res, req)
	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestBearerAuthSetsIdentity(t *testing.T) {
	tokens := newTokenService(t)
	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	h := BearerAuth(tokens, "test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		require.True(t, ok)
		require.Equal(t, "user-1", identity.SubjectID)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()

	h.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
}

func TestIdentityFromWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFrom(req.Context())
	require.False(t, ok)
}
