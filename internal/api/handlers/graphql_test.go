package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/events"
	gql "github.com/gatherly/server/internal/graphql"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events       []events.Event
	owners       map[string]string
	listedFor    []string
	listAllCalls int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{owners: map[string]string{}}
}

func (r *fakeEventRepo) List(ctx context.Context) ([]events.Event, error) {
	r.listAllCalls++
	return r.events, nil
}

func (r *fakeEventRepo) ListForUser(ctx context.Context, userID string) ([]events.Event, error) {
	r.listedFor = append(r.listedFor, userID)
	var result []events.Event
	for _, event := range r.events {
		if r.owners[event.ID] == userID {
			result = append(result, event)
		}
	}
	return result, nil
}

func (r *fakeEventRepo) Create(ctx context.Context, event events.Event, ownerID string) error {
	r.events = append(r.events, event)
	r.owners[event.ID] = ownerID
	return nil
}

// graphqlStack wires the bearer gate in front of the GraphQL handler the
// same way the router does.
func graphqlStack(t *testing.T) (http.Handler, *fakeEventRepo, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)

	repo := newFakeEventRepo()
	schema, err := graphql.ParseSchema(gql.Schema, gql.NewResolver(events.NewService(repo)))
	require.NoError(t, err)

	handler := NewGraphQLHandler(schema, "test")
	gated := middleware.BearerAuth(tokens, "test")(http.HandlerFunc(handler.Query))
	return gated, repo, tokens
}

func postGraphQL(handler http.Handler, authHeader, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestGraphQLRejectsMissingToken(t *testing.T) {
	gated, repo, _ := graphqlStack(t)

	res := postGraphQL(gated, "", `{"query":"{ events { id } }"}`)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Zero(t, repo.listAllCalls, "resolver must not run for unauthenticated requests")
}

func TestGraphQLRejectsBadToken(t *testing.T) {
	gated, repo, _ := graphqlStack(t)

	res := postGraphQL(gated, "Bearer not.a.token", `{"query":"{ events { id } }"}`)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Zero(t, repo.listAllCalls)
}

func TestGraphQLUserEventsUsesTokenSubject(t *testing.T) {
	gated, repo, tokens := graphqlStack(t)

	require.NoError(t, repo.Create(context.Background(), events.Event{
		ID:       "01HYX3KQW7ERTV9XNBM2P8QJZF",
		Name:     "Mine",
		StartsAt: time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC),
	}, "user-1"))

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	res := postGraphQL(gated, "Bearer "+token, `{"query":"{ userEvents { id name } }"}`)
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, []string{"user-1"}, repo.listedFor, "resolver must see the token's subject id")

	var body struct {
		Data struct {
			UserEvents []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"userEvents"`
		} `json:"data"`
		Errors []json.RawMessage `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Empty(t, body.Errors)
	require.Len(t, body.Data.UserEvents, 1)
	require.Equal(t, "Mine", body.Data.UserEvents[0].Name)
}

func TestGraphQLCreateEventOwnedByCaller(t *testing.T) {
	gated, repo, tokens := graphqlStack(t)

	token, err := tokens.Issue("user-7")
	require.NoError(t, err)

	query := `{"query":"mutation { createEvent(input: {name: \"Rooftop Jazz\", longitude: 21.01, latitude: 52.23, startsAt: 1789243200}) { id name } }"}`
	res := postGraphQL(gated, "Bearer "+token, query)
	require.Equal(t, http.StatusOK, res.Code)

	var body struct {
		Data struct {
			CreateEvent struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"createEvent"`
		} `json:"data"`
		Errors []json.RawMessage `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Empty(t, body.Errors)
	require.Equal(t, "Rooftop Jazz", body.Data.CreateEvent.Name)
	require.Equal(t, "user-7", repo.owners[body.Data.CreateEvent.ID])
}

func TestGraphQLMalformedBody(t *testing.T) {
	gated, _, tokens := graphqlStack(t)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	res := postGraphQL(gated, "Bearer "+token, `{"query":`)
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestPlaygroundServesHTML(t *testing.T) {
	handler := NewGraphQLHandler(nil, "test")

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	res := httptest.NewRecorder()
	handler.Playground(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Header().Get("Content-Type"), "text/html")
	require.Contains(t, res.Body.String(), "graphiql")
}
