package repository

import (
	"context"

	"github.com/portfolio-cms/internal/database"
	"github.com/portfolio-cms/internal/models"
)

type contactRepo struct {
	db *database.DB
}

// NewContactRepo creates a new contact message repository
func NewContactRepo(db *database.DB) ContactRepository {
	return &contactRepo{db: db}
}

// Create stores a contact form submission
func (r *contactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	query, args, err := psql.Insert("contact_messages").
		Columns("id", "name", "email", "message", "created_at").
		Values(msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
