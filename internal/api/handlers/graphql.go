package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	graphql "github.com/graph-gophers/graphql-go"
)

type GraphQLHandler struct {
	Schema *graphql.Schema
	Env    string
}

func NewGraphQLHandler(schema *graphql.Schema, env string) *GraphQLHandler {
	return &GraphQLHandler{Schema: schema, Env: env}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Query handles POST /graphql. The route is bearer-gated, so by the time
// this runs the request context carries a verified identity for the
// resolvers to use.
func (h *GraphQLHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://gatherly.app/problems/validation-error", "Invalid GraphQL request", err, h.Env)
		return
	}

	response := h.Schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	payload, err := json.Marshal(response)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.app/problems/server-error", "Server error", err, h.Env)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

// Playground handles GET /graphql: an unauthenticated interactive explorer.
func (h *GraphQLHandler) Playground(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(playgroundHTML))
}

const playgroundHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Gatherly GraphQL</title>
  <link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
</head>
<body style="margin: 0;">
  <div id="graphiql" style="height: 100vh;"></div>
  <script src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
  <script src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
  <script src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
  <script>
    const root = ReactDOM.createRoot(document.getElementById('graphiql'));
    root.render(React.createElement(GraphiQL, {
      fetcher: GraphiQL.createFetcher({ url: '/graphql' }),
    }));
  </script>
</body>
</html>
`
