package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/users"
	"github.com/gatherly/server/internal/metrics"
)

type AuthHandler struct {
	Users *users.Service
	Env   string
}

func NewAuthHandler(usersService *users.Service, env string) *AuthHandler {
	return &AuthHandler{Users: usersService, Env: env}
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register handles POST /register. Success is a bare 201; validation
// failures are 400 and a duplicate email is 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds users.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://gatherly.app/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	_, err := h.Users.Register(r.Context(), creds)
	switch {
	case err == nil:
		metrics.AuthOutcomes.WithLabelValues("register", "success").Inc()
		w.WriteHeader(http.StatusCreated)
	case errors.Is(err, users.ErrValidation):
		metrics.AuthOutcomes.WithLabelValues("register", "failure").Inc()
		problem.Write(w, r, http.StatusBadRequest, "https://gatherly.app/problems/validation-error", "Invalid email or password", err, h.Env)
	case errors.Is(err, users.ErrEmailTaken):
		metrics.AuthOutcomes.WithLabelValues("register", "failure").Inc()
		problem.Write(w, r, http.StatusConflict, "https://gatherly.app/problems/conflict", "Email already registered", err, h.Env)
	default:
		metrics.AuthOutcomes.WithLabelValues("register", "failure").Inc()
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.app/problems/server-error", "Server error", err, h.Env)
	}
}

// Login handles POST /login. Credential failures of every kind collapse
// into one generic 401 so responses never reveal whether an email exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds users.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		problem.Write(w, r, http.StatusBadRequest, "https://gatherly.app/problems/validation-error", "Invalid request", err, h.Env)
		return
	}

	token, err := h.Users.Login(r.Context(), creds)
	if err != nil {
		metrics.AuthOutcomes.WithLabelValues("login", "failure").Inc()
		if errors.Is(err, users.ErrInvalidCredentials) {
			problem.Write(w, r, http.StatusUnauthorized, "https://gatherly.app/problems/unauthorized", "Invalid credentials", nil, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, "https://gatherly.app/problems/server-error", "Server error", err, h.Env)
		return
	}

	metrics.AuthOutcomes.WithLabelValues("login", "success").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(loginResponse{Token: token})
}
