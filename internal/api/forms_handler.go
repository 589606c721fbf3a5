package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/derive"
	"github.com/portfolio-cms/internal/validation"
)

// FormsHandler gives the authoring forms the same derivations and rules the
// write endpoints apply, without storing anything.
type FormsHandler struct {
	schema *validation.Schema
	log    zerolog.Logger
}

// NewFormsHandler creates a new FormsHandler
func NewFormsHandler(schema *validation.Schema, log zerolog.Logger) *FormsHandler {
	return &FormsHandler{
		schema: schema,
		log:    log.With().Str("handler", "forms").Logger(),
	}
}

// DeriveRequest is the body of POST /admin-api/forms/derive
type DeriveRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DeriveResponse carries the values a form may prefill
type DeriveResponse struct {
	Slug        string `json:"slug"`
	WordCount   int    `json:"wordCount"`
	ReadMinutes int    `json:"readMinutes"`
	ReadTime    string `json:"readTime"`
}

// ValidateResponse reports field errors, or the normalized input when valid
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Errors validation.Errors `json:"errors"`
	Value  interface{}       `json:"value,omitempty"`
}

// Derive handles POST /admin-api/forms/derive
func (h *FormsHandler) Derive(c *gin.Context) {
	var req DeriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	c.JSON(http.StatusOK, DeriveResponse{
		Slug:        derive.Slugify(req.Title),
		WordCount:   derive.WordCount(req.Content),
		ReadMinutes: derive.ReadMinutes(req.Content),
		ReadTime:    derive.EstimateReadTime(req.Content),
	})
}

// ValidateArticle handles POST /admin-api/forms/articles/validate
func (h *FormsHandler) ValidateArticle(c *gin.Context) {
	h.validate(c, func(body []byte) (interface{}, error) {
		return h.schema.Article(body)
	})
}

// ValidateProject handles POST /admin-api/forms/projects/validate
func (h *FormsHandler) ValidateProject(c *gin.Context) {
	h.validate(c, func(body []byte) (interface{}, error) {
		return h.schema.Project(body)
	})
}

func (h *FormsHandler) validate(c *gin.Context, check func([]byte) (interface{}, error)) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	value, err := check(body)
	if err == nil {
		c.JSON(http.StatusOK, ValidateResponse{Valid: true, Errors: validation.Errors{}, Value: value})
		return
	}

	verrs, ok := validation.AsErrors(err)
	if !ok {
		h.log.Error().Err(err).Msg("Unexpected validation failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, ValidateResponse{Valid: false, Errors: verrs})
}
