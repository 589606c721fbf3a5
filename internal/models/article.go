package models

// ArticleInput is the author-controlled part of an article, as submitted by
// the admin form and checked by the article schema.
type ArticleInput struct {
	Title          string `json:"title" yaml:"title" validate:"required"`
	Slug           string `json:"slug" yaml:"slug" validate:"required,slug"`
	Excerpt        string `json:"excerpt" yaml:"excerpt" validate:"min=10,max=200"`
	Content        string `json:"content" yaml:"content" validate:"min=100"`
	Category       string `json:"category" yaml:"category" validate:"required"`
	ReadTime       string `json:"readTime" yaml:"readTime" validate:"required"`
	FeaturedImage  string `json:"featuredImage" yaml:"featuredImage" validate:"omitempty,url"`
	SEOTitle       string `json:"seoTitle" yaml:"seoTitle" validate:"max=60"`
	SEODescription string `json:"seoDescription" yaml:"seoDescription" validate:"max=160"`
	SEOOgImage     string `json:"seoOgImage" yaml:"seoOgImage" validate:"omitempty,url"`
	Published      bool   `json:"published" yaml:"published"`
}

// Article represents an article in the system
type Article struct {
	Record       `yaml:",inline"`
	ArticleInput `yaml:",inline"`
}

// NewArticle wraps validated input into an unsaved article
func NewArticle(in ArticleInput) *Article {
	return &Article{ArticleInput: in}
}

// URLSlug returns the article slug
func (a *Article) URLSlug() string {
	return a.Slug
}

// IsPublished reports the publication flag
func (a *Article) IsPublished() bool {
	return a.Published
}
