// Package auth defines the identity verification contract and its JWT-backed
// implementation. The HTTP layer consumes Verifier as a capability; core
// services never see credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTokenRequired = errors.New("auth: bearer token required")
	ErrTokenInvalid  = errors.New("auth: token invalid")
)

// Identity is a verified caller.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verifier validates a bearer credential and returns the caller's identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// TokenInvalidError wraps the verifier rejection reason.
type TokenInvalidError struct {
	Reason string
}

func (e *TokenInvalidError) Error() string {
	if e == nil || strings.TrimSpace(e.Reason) == "" {
		return ErrTokenInvalid.Error()
	}
	return fmt.Sprintf("%s: %s", ErrTokenInvalid.Error(), e.Reason)
}

func (e *TokenInvalidError) Unwrap() error {
	return ErrTokenInvalid
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, error) {
	const prefix = "Bearer "
	trimmed := strings.TrimSpace(header)
	if trimmed == "" || !strings.HasPrefix(trimmed, prefix) {
		return "", ErrTokenRequired
	}
	token := strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
	if token == "" {
		return "", ErrTokenRequired
	}
	return token, nil
}
