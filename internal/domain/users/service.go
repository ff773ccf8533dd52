package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/ids"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var (
	ErrValidation         = errors.New("invalid email or password")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Credentials is the request body of both /register and /login.
type Credentials struct {
	Email    string `json:"email" validate:"required,contains=@"`
	Password string `json:"password" validate:"required,min=8"`
}

// Service orchestrates the credential hasher and the token service against
// stored user records.
type Service struct {
	repo     Repository
	tokens   *auth.TokenService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewService(repo Repository, tokens *auth.TokenService, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger.With().Str("component", "users").Logger(),
	}
}

// Register validates the credentials, mints a subject id, hashes the
// password, issues a token bound to the subject id, and persists the whole
// record in one write. Validation failures happen before any side effect.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	if err := s.validate.Struct(creds); err != nil {
		return User{}, fmt.Errorf("%w: %s", ErrValidation, validationDetail(err))
	}

	subjectID := ids.NewSubjectID()

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	token, err := s.tokens.Issue(subjectID)
	if err != nil {
		return User{}, fmt.Errorf("issue token: %w", err)
	}

	user := User{
		ID:           subjectID,
		Email:        creds.Email,
		PasswordHash: hash,
		Token:        token,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("subject_id", subjectID).Msg("user registered")
	return user, nil
}

// Login verifies the candidate password against the stored hash and returns
// the stored token. Every credential failure collapses into
// ErrInvalidCredentials so the response never reveals whether the email
// exists.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, error) {
	user, err := s.repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, creds.Password) {
		return "", ErrInvalidCredentials
	}
	if user.Token == "" {
		return "", ErrInvalidCredentials
	}

	s.logger.Info().Str("subject_id", user.ID).Msg("user logged in")
	return user.Token, nil
}

func validationDetail(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		switch first.Field() {
		case "Email":
			return "email must contain @"
		case "Password":
			return "password must be at least 8 characters"
		}
	}
	return "invalid request"
}
