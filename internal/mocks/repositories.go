package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/portfolio-cms/internal/apperrors"
	"github.com/portfolio-cms/internal/models"
)

// MockContentRepository is an in-memory implementation of ContentRepository.
// Err, when set, is returned by every call; the narrower *Error fields only
// affect their own operation.
type MockContentRepository[E models.Entity] struct {
	mu          sync.Mutex
	Items       map[string]E
	Err         error
	CreateError error
	UpdateError error
	Calls       int
}

// NewMockContentRepository creates an empty repository
func NewMockContentRepository[E models.Entity]() *MockContentRepository[E] {
	return &MockContentRepository[E]{Items: make(map[string]E)}
}

// NewMockArticleRepository creates an empty article repository
func NewMockArticleRepository() *MockContentRepository[*models.Article] {
	return NewMockContentRepository[*models.Article]()
}

// NewMockProjectRepository creates an empty project repository
func NewMockProjectRepository() *MockContentRepository[*models.Project] {
	return NewMockContentRepository[*models.Project]()
}

// Seed stores items as-is, bypassing every check
func (m *MockContentRepository[E]) Seed(items ...E) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		m.Items[item.Meta().ID] = item
	}
}

func (m *MockContentRepository[E]) begin() error {
	m.Calls++
	return m.Err
}

func (m *MockContentRepository[E]) sorted(filter func(E) bool) []E {
	items := make([]E, 0, len(m.Items))
	for _, item := range m.Items {
		if filter(item) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Meta().DisplayTime().After(items[j].Meta().DisplayTime())
	})
	return items
}

func (m *MockContentRepository[E]) ListPublished(ctx context.Context) ([]E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	return m.sorted(func(e E) bool { return e.IsPublished() }), nil
}

func (m *MockContentRepository[E]) ListAll(ctx context.Context) ([]E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	return m.sorted(func(E) bool { return true }), nil
}

func (m *MockContentRepository[E]) ListSlugs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	slugs := []string{}
	for _, item := range m.sorted(func(e E) bool { return e.IsPublished() }) {
		slugs = append(slugs, item.URLSlug())
	}
	return slugs, nil
}

func (m *MockContentRepository[E]) GetBySlug(ctx context.Context, slug string) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero E
	if err := m.begin(); err != nil {
		return zero, err
	}
	for _, item := range m.Items {
		if item.URLSlug() == slug && item.IsPublished() {
			return item, nil
		}
	}
	return zero, apperrors.ErrNotFound
}

func (m *MockContentRepository[E]) GetByID(ctx context.Context, id string) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero E
	if err := m.begin(); err != nil {
		return zero, err
	}
	item, ok := m.Items[id]
	if !ok {
		return zero, apperrors.ErrNotFound
	}
	return item, nil
}

func (m *MockContentRepository[E]) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return false, err
	}
	for id, item := range m.Items {
		if item.URLSlug() == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockContentRepository[E]) Create(ctx context.Context, entity E) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return err
	}
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, item := range m.Items {
		if item.URLSlug() == entity.URLSlug() {
			return apperrors.ErrConflict
		}
	}
	m.Items[entity.Meta().ID] = entity
	return nil
}

func (m *MockContentRepository[E]) Update(ctx context.Context, entity E) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return err
	}
	if m.UpdateError != nil {
		return m.UpdateError
	}
	id := entity.Meta().ID
	if _, ok := m.Items[id]; !ok {
		return apperrors.ErrNotFound
	}
	m.Items[id] = entity
	return nil
}

func (m *MockContentRepository[E]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return err
	}
	if _, ok := m.Items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.Items, id)
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
	Err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	key := strings.ToLower(user.Email)
	if existing, ok := m.Users[key]; ok {
		user.ID = existing.ID
	}
	m.Users[key] = user
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	user, ok := m.Users[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), m.Err
}

// MockContactRepository records stored contact messages
type MockContactRepository struct {
	Messages []*models.ContactMessage
	Err      error
}

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{}
}

func (m *MockContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msg)
	return nil
}
