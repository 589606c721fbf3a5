package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/apperrors"
	"github.com/portfolio-cms/internal/auth"
	"github.com/portfolio-cms/internal/models"
	"github.com/portfolio-cms/internal/service"
	"github.com/portfolio-cms/internal/validation"
)

// Error codes that let admin forms tell failures apart
const (
	codeValidationFailed = "VALIDATION_FAILED"
	codeSlugConflict     = "SLUG_CONFLICT"
)

// decoder turns a request body into a validated, unsaved entity
type decoder[E models.Entity] func(body []byte) (E, error)

func articleDecoder(schema *validation.Schema) decoder[*models.Article] {
	return func(body []byte) (*models.Article, error) {
		in, err := schema.Article(body)
		if err != nil {
			return nil, err
		}
		return models.NewArticle(in), nil
	}
}

func projectDecoder(schema *validation.Schema) decoder[*models.Project] {
	return func(body []byte) (*models.Project, error) {
		in, err := schema.Project(body)
		if err != nil {
			return nil, err
		}
		return models.NewProject(in), nil
	}
}

// contentHandler serves the admin CRUD endpoints for one content type.
// Every route runs behind the identity gate.
type contentHandler[E models.Entity] struct {
	service  service.ContentService[E]
	noun     string
	decode   decoder[E]
	onChange func(ctx context.Context)
	log      zerolog.Logger
}

func newContentHandler[E models.Entity](svc service.ContentService[E], noun string, decode decoder[E], onChange func(ctx context.Context), log zerolog.Logger) *contentHandler[E] {
	if onChange == nil {
		onChange = func(context.Context) {}
	}
	return &contentHandler[E]{
		service:  svc,
		noun:     noun,
		decode:   decode,
		onChange: onChange,
		log:      log.With().Str("handler", "admin").Str("content", noun).Logger(),
	}
}

// List handles GET /admin-api/{collection}
func (h *contentHandler[E]) List(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /admin-api/{collection}/:id
func (h *contentHandler[E]) Get(c *gin.Context) {
	item, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /admin-api/{collection}
func (h *contentHandler[E]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	entity, ok := h.bind(c)
	if !ok {
		return
	}

	var authorID string
	if identity, ok := auth.GetIdentity(c); ok {
		authorID = identity.ID
	}

	created, err := h.service.Create(ctx, entity, authorID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.onChange(ctx)
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin-api/{collection}/:id. A missing id is reported
// before the body is looked at.
func (h *contentHandler[E]) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.service.GetByID(ctx, id); err != nil {
		h.fail(c, err)
		return
	}

	entity, ok := h.bind(c)
	if !ok {
		return
	}

	updated, err := h.service.Update(ctx, id, entity)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.onChange(ctx)
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /admin-api/{collection}/:id
func (h *contentHandler[E]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	h.onChange(ctx)
	c.JSON(http.StatusOK, gin.H{"message": h.noun + " deleted"})
}

// bind reads and validates the request body, writing a 400 on failure
func (h *contentHandler[E]) bind(c *gin.Context) (E, bool) {
	var zero E

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return zero, false
	}

	entity, err := h.decode(body)
	if err != nil {
		h.fail(c, err)
		return zero, false
	}
	return entity, true
}

// fail maps a service error onto the admin error responses
func (h *contentHandler[E]) fail(c *gin.Context, err error) {
	if verrs, ok := validation.AsErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"code":    codeValidationFailed,
			"details": verrs,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": h.noun + " not found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already exists", "code": codeSlugConflict})
	default:
		h.log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("Admin request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
