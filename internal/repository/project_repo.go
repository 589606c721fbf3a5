package repository

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/portfolio-cms/internal/database"
	"github.com/portfolio-cms/internal/models"
)

var projectColumns = []string{
	"id", "slug", "name", "short_description", "outcome_metric", "thumbnail_url", "hero_image_url",
	"impact_summary", "year", "role", "tags", "tech_stack", "sections",
	"seo_title", "seo_description", "seo_og_image",
	"published", "published_at", "next_project_slug", "prev_project_slug",
	"author_id", "created_at", "updated_at",
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *database.DB) ProjectRepository {
	return newContentRepo(db, table[*models.Project]{
		name:    "projects",
		columns: projectColumns,
		scan:    scanProject,
		values:  projectValues,
	})
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	var sections models.Sections
	var publishedAt sql.NullTime

	err := row.Scan(
		&project.ID, &project.Slug, &project.Name, &project.ShortDescription, &project.OutcomeMetric,
		&project.ThumbnailURL, &project.HeroImageURL, &project.ImpactSummary, &project.Year, &project.Role,
		pq.Array(&project.Tags), pq.Array(&project.TechStack), &sections,
		&project.SEOTitle, &project.SEODescription, &project.SEOOgImage,
		&project.Published, &publishedAt, &project.NextProjectSlug, &project.PrevProjectSlug,
		&project.AuthorID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Context = sections.Context
	project.Approach = sections.Approach
	project.Execution = sections.Execution
	project.Outcome = sections.Outcome
	if project.Execution.Images == nil {
		project.Execution.Images = []models.ProjectImage{}
	}
	if project.Outcome.Metrics == nil {
		project.Outcome.Metrics = []models.ProjectMetric{}
	}

	if publishedAt.Valid {
		project.PublishedAt = &publishedAt.Time
	}
	return &project, nil
}

func projectValues(project *models.Project) []interface{} {
	sections := models.Sections{
		Context:   project.Context,
		Approach:  project.Approach,
		Execution: project.Execution,
		Outcome:   project.Outcome,
	}

	return []interface{}{
		project.ID, project.Slug, project.Name, project.ShortDescription, project.OutcomeMetric,
		project.ThumbnailURL, project.HeroImageURL, project.ImpactSummary, project.Year, project.Role,
		pq.Array(orEmpty(project.Tags)), pq.Array(orEmpty(project.TechStack)), sections,
		project.SEOTitle, project.SEODescription, project.SEOOgImage,
		project.Published, project.PublishedAt, project.NextProjectSlug, project.PrevProjectSlug,
		project.AuthorID, project.CreatedAt, project.UpdatedAt,
	}
}

// orEmpty keeps NOT NULL array columns from receiving a nil slice
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
