package repository

import (
	"context"

	"github.com/portfolio-cms/internal/database"
	"github.com/portfolio-cms/internal/models"
)

// ContentRepository defines the storage operations shared by articles and
// projects. Lookups that find nothing return apperrors.ErrNotFound and slug
// collisions detected by the database return apperrors.ErrConflict.
type ContentRepository[E models.Entity] interface {
	ListPublished(ctx context.Context) ([]E, error)
	ListAll(ctx context.Context) ([]E, error)
	ListSlugs(ctx context.Context) ([]string, error)
	GetBySlug(ctx context.Context, slug string) (E, error)
	GetByID(ctx context.Context, id string) (E, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, entity E) error
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id string) error
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository = ContentRepository[*models.Article]

// ProjectRepository defines the interface for project data operations
type ProjectRepository = ContentRepository[*models.Project]

// UserRepository defines the interface for admin account operations
type UserRepository interface {
	Upsert(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// ContactRepository stores contact form submissions
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Project ProjectRepository
	User    UserRepository
	Contact ContactRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Project: NewProjectRepo(db),
		User:    NewUserRepo(db),
		Contact: NewContactRepo(db),
	}
}
