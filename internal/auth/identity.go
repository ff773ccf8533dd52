package auth

import "strings"

// Identity is the verified caller of a request: the subject id embedded in
// a token whose signature checked out.
type Identity struct {
	SubjectID string
}

// BearerToken extracts the token from an Authorization header value.
// Accepts "Bearer <token>" with any casing of the scheme.
func BearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}

// ExtractIdentity parses an Authorization header and verifies the bearer
// token it carries. An absent or malformed header, or a token that fails
// verification, is an error; there is no anonymous identity. This runs once
// per request in the auth middleware and the result is shared through the
// request context with every downstream consumer.
func ExtractIdentity(authHeader string, tokens *TokenService) (Identity, error) {
	token, err := BearerToken(authHeader)
	if err != nil {
		return Identity{}, err
	}
	subjectID, err := tokens.Verify(token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{SubjectID: subjectID}, nil
}
