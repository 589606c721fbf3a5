package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Section is a titled block of case study narrative
type Section struct {
	Title string `json:"title" yaml:"title" validate:"required"`
	Body  string `json:"body" yaml:"body" validate:"required"`
}

// ApproachSection adds an optional pull quote to a section
type ApproachSection struct {
	Title   string `json:"title" yaml:"title" validate:"required"`
	Body    string `json:"body" yaml:"body" validate:"required"`
	Callout string `json:"callout,omitempty" yaml:"callout,omitempty"`
}

// ProjectImage is a captioned screenshot in the execution section
type ProjectImage struct {
	URL     string `json:"url" yaml:"url" validate:"required,url"`
	Caption string `json:"caption" yaml:"caption"`
}

// ExecutionSection carries an ordered image gallery
type ExecutionSection struct {
	Title  string         `json:"title" yaml:"title" validate:"required"`
	Body   string         `json:"body" yaml:"body" validate:"required"`
	Images []ProjectImage `json:"images" yaml:"images" validate:"dive"`
}

// ProjectMetric is a headline number with its label
type ProjectMetric struct {
	Value string `json:"value" yaml:"value" validate:"required"`
	Label string `json:"label" yaml:"label" validate:"required"`
}

// OutcomeSection summarises results
type OutcomeSection struct {
	Title   string          `json:"title" yaml:"title" validate:"required"`
	Metrics []ProjectMetric `json:"metrics" yaml:"metrics" validate:"dive"`
	Summary string          `json:"summary" yaml:"summary" validate:"required"`
}

// ProjectInput is the author-controlled part of a project case study
type ProjectInput struct {
	Name             string           `json:"name" yaml:"name" validate:"required"`
	Slug             string           `json:"slug" yaml:"slug" validate:"required,slug"`
	ShortDescription string           `json:"shortDescription" yaml:"shortDescription" validate:"min=10,max=200"`
	OutcomeMetric    string           `json:"outcomeMetric" yaml:"outcomeMetric" validate:"required"`
	ThumbnailURL     string           `json:"thumbnailUrl" yaml:"thumbnailUrl" validate:"omitempty,url"`
	HeroImageURL     string           `json:"heroImageUrl" yaml:"heroImageUrl" validate:"omitempty,url"`
	ImpactSummary    string           `json:"impactSummary" yaml:"impactSummary" validate:"min=10"`
	Year             string           `json:"year" yaml:"year" validate:"year"`
	Role             string           `json:"role" yaml:"role" validate:"required"`
	Tags             []string         `json:"tags" yaml:"tags" validate:"dive,required,max=32"`
	TechStack        []string         `json:"techStack" yaml:"techStack" validate:"dive,required"`
	Context          Section          `json:"context" yaml:"context"`
	Approach         ApproachSection  `json:"approach" yaml:"approach"`
	Execution        ExecutionSection `json:"execution" yaml:"execution"`
	Outcome          OutcomeSection   `json:"outcome" yaml:"outcome"`
	SEOTitle         string           `json:"seoTitle" yaml:"seoTitle" validate:"max=60"`
	SEODescription   string           `json:"seoDescription" yaml:"seoDescription" validate:"max=160"`
	SEOOgImage       string           `json:"seoOgImage" yaml:"seoOgImage" validate:"omitempty,url"`
	Published        bool             `json:"published" yaml:"published"`
	NextProjectSlug  string           `json:"nextProjectSlug" yaml:"nextProjectSlug"`
	PrevProjectSlug  string           `json:"prevProjectSlug" yaml:"prevProjectSlug"`
}

// Project represents a portfolio case study
type Project struct {
	Record       `yaml:",inline"`
	ProjectInput `yaml:",inline"`
}

// NewProject wraps validated input into an unsaved project
func NewProject(in ProjectInput) *Project {
	return &Project{ProjectInput: in}
}

// URLSlug returns the project slug
func (p *Project) URLSlug() string {
	return p.Slug
}

// IsPublished reports the publication flag
func (p *Project) IsPublished() bool {
	return p.Published
}

// Sections groups the four narrative blocks for JSONB storage
type Sections struct {
	Context   Section          `json:"context"`
	Approach  ApproachSection  `json:"approach"`
	Execution ExecutionSection `json:"execution"`
	Outcome   OutcomeSection   `json:"outcome"`
}

// Value implements driver.Valuer
func (s Sections) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *Sections) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = Sections{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Sections", src)
	}
}
