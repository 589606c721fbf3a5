package mocks

import (
	"context"
	"net/http"

	"github.com/portfolio-cms/internal/apperrors"
	"github.com/portfolio-cms/internal/auth"
	"github.com/portfolio-cms/internal/models"
)

// MockGate authorizes every request as Identity, or none when it is nil
type MockGate struct {
	Identity *auth.Identity
	Calls    int
}

func (m *MockGate) Authorize(r *http.Request) (*auth.Identity, error) {
	m.Calls++
	if m.Identity == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return m.Identity, nil
}

// MockVerifier accepts a single email/password pair
type MockVerifier struct {
	Email    string
	Password string
	Identity *auth.Identity
	Err      error
}

func (m *MockVerifier) Verify(ctx context.Context, email, password string) (*auth.Identity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if email != m.Email || password != m.Password {
		return nil, apperrors.ErrInvalidCredentials
	}
	return m.Identity, nil
}

// MockContactService records submissions
type MockContactService struct {
	Submitted []*models.ContactMessage
	Err       error
}

func NewMockContactService() *MockContactService {
	return &MockContactService{}
}

func (m *MockContactService) Submit(ctx context.Context, msg *models.ContactMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.Submitted = append(m.Submitted, msg)
	return nil
}
