package auth

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/portfolio-cms/internal/apperrors"
)

// SessionName is the name of the admin session cookie
const SessionName = "portfolio-admin"

// Session value keys
const (
	sessionKeyID    = "uid"
	sessionKeyEmail = "email"
	sessionKeyName  = "name"
)

// SessionStore keeps the admin identity in a signed cookie
type SessionStore struct {
	store *sessions.CookieStore
}

// NewSessionStore creates a cookie store keyed from secret. The secret is
// SHA-256 hashed to derive a 32-byte signing key.
func NewSessionStore(secret string, ttl time.Duration, secure bool) *SessionStore {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(store.Options.MaxAge)

	return &SessionStore{store: store}
}

// Save writes id into the session cookie
func (s *SessionStore) Save(w http.ResponseWriter, r *http.Request, id *Identity) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil && session == nil {
		return err
	}

	session.Values[sessionKeyID] = id.ID
	session.Values[sessionKeyEmail] = id.Email
	session.Values[sessionKeyName] = id.Name
	return session.Save(r, w)
}

// Clear expires the session cookie
func (s *SessionStore) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil && session == nil {
		return err
	}

	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// Load reads the identity from the session cookie
func (s *SessionStore) Load(r *http.Request) (*Identity, error) {
	session, err := s.store.Get(r, SessionName)
	if err != nil || session.IsNew {
		return nil, apperrors.ErrUnauthorized
	}

	id, _ := session.Values[sessionKeyID].(string)
	if id == "" {
		return nil, apperrors.ErrUnauthorized
	}
	email, _ := session.Values[sessionKeyEmail].(string)
	name, _ := session.Values[sessionKeyName].(string)

	return &Identity{ID: id, Email: email, Name: name}, nil
}
