package models

import (
	"time"
)

// Record holds the system-managed fields shared by every content entity
type Record struct {
	ID          string     `json:"id" yaml:"id" db:"id"`
	AuthorID    string     `json:"authorId" yaml:"authorId" db:"author_id"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt" db:"updated_at"`
}

// Meta returns the record itself so embedding types satisfy Entity.
func (r *Record) Meta() *Record {
	return r
}

// DisplayTime is the timestamp listings sort and display by:
// publishedAt when present, createdAt otherwise.
func (r *Record) DisplayTime() time.Time {
	if r.PublishedAt != nil {
		return *r.PublishedAt
	}
	return r.CreatedAt
}

// Entity is implemented by *Article and *Project
type Entity interface {
	Meta() *Record
	URLSlug() string
	IsPublished() bool
}
