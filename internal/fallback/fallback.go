package fallback

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/portfolio-cms/internal/models"
)

//go:embed content.yaml
var contentYAML []byte

// Dataset is the static content served when the database is absent or
// failing. It is loaded once and never modified; accessors hand out copies.
type Dataset struct {
	articles []models.Article
	projects []models.Project
}

type document struct {
	Articles []models.Article `yaml:"articles"`
	Projects []models.Project `yaml:"projects"`
}

// Load parses the embedded dataset
func Load() (*Dataset, error) {
	return Parse(contentYAML)
}

// MustLoad is Load for program start-up
func MustLoad() *Dataset {
	ds, err := Load()
	if err != nil {
		panic(err)
	}
	return ds
}

// Parse builds a dataset from YAML
func Parse(data []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fallback content: %w", err)
	}

	for i := range doc.Projects {
		normalizeProject(&doc.Projects[i])
	}

	return &Dataset{articles: doc.Articles, projects: doc.Projects}, nil
}

// Articles returns a fresh copy of every fallback article
func (d *Dataset) Articles() []*models.Article {
	out := make([]*models.Article, 0, len(d.articles))
	for i := range d.articles {
		a := d.articles[i]
		if a.PublishedAt != nil {
			t := *a.PublishedAt
			a.PublishedAt = &t
		}
		out = append(out, &a)
	}
	return out
}

// Projects returns a fresh copy of every fallback project
func (d *Dataset) Projects() []*models.Project {
	out := make([]*models.Project, 0, len(d.projects))
	for i := range d.projects {
		out = append(out, cloneProject(d.projects[i]))
	}
	return out
}

func cloneProject(p models.Project) *models.Project {
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		p.PublishedAt = &t
	}
	p.Tags = append([]string{}, p.Tags...)
	p.TechStack = append([]string{}, p.TechStack...)
	p.Execution.Images = append([]models.ProjectImage{}, p.Execution.Images...)
	p.Outcome.Metrics = append([]models.ProjectMetric{}, p.Outcome.Metrics...)
	return &p
}

func normalizeProject(p *models.Project) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.Execution.Images == nil {
		p.Execution.Images = []models.ProjectImage{}
	}
	if p.Outcome.Metrics == nil {
		p.Outcome.Metrics = []models.ProjectMetric{}
	}
}
