package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/portfolio-cms/internal/apperrors"
	"github.com/portfolio-cms/internal/database"
	"github.com/portfolio-cms/internal/models"
)

// Newest first; drafts without a publication date sort by creation time
const displayOrder = "COALESCE(published_at, created_at) DESC"

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Columns that are written once on insert and never updated
var immutableColumns = map[string]bool{
	"id":         true,
	"author_id":  true,
	"created_at": true,
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// table maps an entity type onto its SQL table. values must return one
// argument per column, in column order.
type table[E models.Entity] struct {
	name    string
	columns []string
	scan    func(rowScanner) (E, error)
	values  func(E) []interface{}
}

// contentRepo is the Postgres implementation of ContentRepository
type contentRepo[E models.Entity] struct {
	db    *database.DB
	table table[E]
}

func newContentRepo[E models.Entity](db *database.DB, t table[E]) *contentRepo[E] {
	return &contentRepo[E]{db: db, table: t}
}

func (r *contentRepo[E]) selectAll() sq.SelectBuilder {
	return psql.Select(r.table.columns...).From(r.table.name)
}

// ListPublished returns published entities, newest first
func (r *contentRepo[E]) ListPublished(ctx context.Context) ([]E, error) {
	return r.list(ctx, r.selectAll().Where(sq.Eq{"published": true}).OrderBy(displayOrder))
}

// ListAll returns every entity regardless of publication state
func (r *contentRepo[E]) ListAll(ctx context.Context) ([]E, error) {
	return r.list(ctx, r.selectAll().OrderBy(displayOrder))
}

// ListSlugs returns the slugs of published entities
func (r *contentRepo[E]) ListSlugs(ctx context.Context) ([]string, error) {
	query, args, err := psql.Select("slug").
		From(r.table.name).
		Where(sq.Eq{"published": true}).
		OrderBy(displayOrder).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slugs := []string{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// GetBySlug retrieves a published entity by slug
func (r *contentRepo[E]) GetBySlug(ctx context.Context, slug string) (E, error) {
	return r.get(ctx, r.selectAll().Where(sq.Eq{"slug": slug, "published": true}))
}

// GetByID retrieves an entity by ID, published or not
func (r *contentRepo[E]) GetByID(ctx context.Context, id string) (E, error) {
	if _, err := uuid.Parse(id); err != nil {
		var zero E
		return zero, apperrors.ErrNotFound
	}
	return r.get(ctx, r.selectAll().Where(sq.Eq{"id": id}))
}

// SlugExists checks if another entity already uses slug. excludeID, when
// set, is left out of the check so an entity never collides with itself.
func (r *contentRepo[E]) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	b := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(r.table.name).
		Where(sq.Eq{"slug": slug}).
		Suffix(")")
	if excludeID != "" {
		b = b.Where(sq.NotEq{"id": excludeID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&exists)
	return exists, err
}

// Create inserts a new entity
func (r *contentRepo[E]) Create(ctx context.Context, entity E) error {
	_, err := r.exec(ctx, psql.Insert(r.table.name).
		Columns(r.table.columns...).
		Values(r.table.values(entity)...))
	return err
}

// Update replaces every mutable column of an existing entity
func (r *contentRepo[E]) Update(ctx context.Context, entity E) error {
	values := r.table.values(entity)
	set := make(map[string]interface{}, len(values))
	for i, col := range r.table.columns {
		if immutableColumns[col] {
			continue
		}
		set[col] = values[i]
	}

	id := entity.Meta().ID
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrNotFound
	}

	res, err := r.exec(ctx, psql.Update(r.table.name).SetMap(set).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes an entity permanently
func (r *contentRepo[E]) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrNotFound
	}

	res, err := r.exec(ctx, psql.Delete(r.table.name).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *contentRepo[E]) list(ctx context.Context, b sq.SelectBuilder) ([]E, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []E{}
	for rows.Next() {
		item, err := r.table.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *contentRepo[E]) get(ctx context.Context, b sq.SelectBuilder) (E, error) {
	var zero E

	query, args, err := b.ToSql()
	if err != nil {
		return zero, err
	}

	item, err := r.table.scan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, apperrors.ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return item, nil
}

func (r *contentRepo[E]) exec(ctx context.Context, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

// translate maps driver errors onto the application's sentinel errors
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, pqErr.Constraint)
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
