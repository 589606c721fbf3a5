package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/service"
	"github.com/portfolio-cms/internal/validation"
)

// ContactHandler accepts submissions of the public contact form
type ContactHandler struct {
	schema  *validation.Schema
	contact service.ContactService
	log     zerolog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(schema *validation.Schema, contact service.ContactService, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		schema:  schema,
		contact: contact,
		log:     log.With().Str("handler", "contact").Logger(),
	}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	msg, err := h.schema.Contact(body)
	if err != nil {
		verrs, _ := validation.AsErrors(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"code":    codeValidationFailed,
			"details": verrs,
		})
		return
	}

	if err := h.contact.Submit(c.Request.Context(), &msg); err != nil {
		h.log.Error().Err(err).Msg("Failed to submit contact message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form submitted successfully"})
}
