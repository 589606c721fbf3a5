// Package auth decides whether a request to the admin API carries an
// authenticated identity. Identities come from a bearer token or from the
// signed session cookie issued at login.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/portfolio-cms/internal/apperrors"
)

// Identity is the authenticated admin behind a request
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Gate yields the identity behind a request or apperrors.ErrUnauthorized
type Gate interface {
	Authorize(r *http.Request) (*Identity, error)
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity stores id in ctx
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext retrieves the identity stored by WithIdentity
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}

// Authenticator accepts either an "Authorization: Bearer" token or the
// session cookie. A present but malformed Authorization header is rejected
// without falling back to the cookie.
type Authenticator struct {
	tokens   *TokenIssuer
	sessions *SessionStore
}

// NewAuthenticator creates a gate backed by tokens and sessions
func NewAuthenticator(tokens *TokenIssuer, sessions *SessionStore) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions}
}

// Authorize implements Gate
func (a *Authenticator) Authorize(r *http.Request) (*Identity, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return nil, apperrors.ErrUnauthorized
		}
		return a.tokens.Parse(strings.TrimSpace(token))
	}

	if a.sessions == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return a.sessions.Load(r)
}
