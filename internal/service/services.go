package service

import (
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/fallback"
	"github.com/portfolio-cms/internal/models"
	"github.com/portfolio-cms/internal/repository"
)

// ArticleService defines the content operations for articles
type ArticleService = ContentService[*models.Article]

// ProjectService defines the content operations for projects
type ProjectService = ContentService[*models.Project]

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Project ProjectService
	Contact ContactService
}

// NewServices creates all services. repos is nil when no database is
// configured, in which case content is served from the fallback dataset.
func NewServices(repos *repository.Repositories, dataset *fallback.Dataset, log zerolog.Logger, opts ...Option) *Services {
	var (
		articleRepo repository.ArticleRepository
		projectRepo repository.ProjectRepository
		contactRepo repository.ContactRepository
	)
	if repos != nil {
		articleRepo = repos.Article
		projectRepo = repos.Project
		contactRepo = repos.Contact
	}

	return &Services{
		Article: NewContentService(articleRepo, dataset.Articles, log.With().Str("service", "article").Logger(), opts...),
		Project: NewContentService(projectRepo, dataset.Projects, log.With().Str("service", "project").Logger(), opts...),
		Contact: newContactService(contactRepo, log, opts...),
	}
}
