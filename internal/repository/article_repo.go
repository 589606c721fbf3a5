package repository

import (
	"database/sql"

	"github.com/portfolio-cms/internal/database"
	"github.com/portfolio-cms/internal/models"
)

var articleColumns = []string{
	"id", "slug", "title", "excerpt", "content", "category", "read_time", "featured_image",
	"seo_title", "seo_description", "seo_og_image",
	"published", "published_at", "author_id", "created_at", "updated_at",
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return newContentRepo(db, table[*models.Article]{
		name:    "articles",
		columns: articleColumns,
		scan:    scanArticle,
		values:  articleValues,
	})
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var publishedAt sql.NullTime

	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Excerpt, &article.Content,
		&article.Category, &article.ReadTime, &article.FeaturedImage,
		&article.SEOTitle, &article.SEODescription, &article.SEOOgImage,
		&article.Published, &publishedAt, &article.AuthorID, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}
	return &article, nil
}

func articleValues(article *models.Article) []interface{} {
	return []interface{}{
		article.ID, article.Slug, article.Title, article.Excerpt, article.Content,
		article.Category, article.ReadTime, article.FeaturedImage,
		article.SEOTitle, article.SEODescription, article.SEOOgImage,
		article.Published, article.PublishedAt, article.AuthorID, article.CreatedAt, article.UpdatedAt,
	}
}
