package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/portfolio-cms/internal/apperrors"
	"github.com/portfolio-cms/internal/repository"
)

// Verifier checks admin credentials
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*Identity, error)
}

// AdminAccount is the account configured through the environment. It is
// used when no matching user exists in the database.
type AdminAccount struct {
	Email    string
	Password string
	Name     string
}

// CredentialVerifier checks credentials against stored users first and the
// configured admin account second.
type CredentialVerifier struct {
	users repository.UserRepository
	admin AdminAccount
}

// NewCredentialVerifier creates a verifier. users may be nil when no
// database is configured.
func NewCredentialVerifier(users repository.UserRepository, admin AdminAccount) *CredentialVerifier {
	return &CredentialVerifier{users: users, admin: admin}
}

// Verify returns the identity for a valid email and password, or
// apperrors.ErrInvalidCredentials.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if v.users != nil {
		user, err := v.users.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
				return nil, apperrors.ErrInvalidCredentials
			}
			return &Identity{ID: user.ID, Email: user.Email, Name: user.Name}, nil
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	if v.admin.Password == "" || email != strings.ToLower(v.admin.Email) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(v.admin.Password)) != 1 {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &Identity{ID: AdminID(v.admin.Email), Email: email, Name: v.admin.Name}, nil
}

// AdminID derives a stable identifier for the configured admin account so
// content it authors keeps the same owner across restarts.
func AdminID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email))).String()
}

// HashPassword hashes a password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
