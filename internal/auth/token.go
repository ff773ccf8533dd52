package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("signing secret cannot be empty")
)

// Claims is the full payload of an identity token: a single subject id.
// Tokens carry no issued-at or expiry claim, so issuance is deterministic
// for a fixed secret and subject id. See DESIGN.md for the open question on
// expiry and revocation.
type Claims struct {
	SubjectID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-SHA256 signed identity tokens.
// The signing secret is loaded once at startup and never changes for the
// process lifetime; issuance and verification share the same secret.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue signs a claim set containing exactly the subject id and returns the
// compact representation (header.payload.signature, base64url segments).
func (s *TokenService) Issue(subjectID string) (string, error) {
	if subjectID == "" {
		return "", ErrInvalidToken
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{SubjectID: subjectID})
	// The header carries only the algorithm identifier.
	delete(token.Header, "typ")
	return token.SignedString(s.secret)
}

// Verify recomputes the signature over header and payload and returns the
// embedded subject id on match. Malformed input of any shape is a
// verification failure, never a panic.
func (s *TokenService) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.SubjectID == "" {
		return "", ErrInvalidToken
	}
	return claims.SubjectID, nil
}
