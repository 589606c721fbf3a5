package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/apperrors"
	"github.com/portfolio-cms/internal/auth"
	"github.com/portfolio-cms/internal/validation"
)

// AuthHandler handles admin sign in and sign out
type AuthHandler struct {
	schema   *validation.Schema
	verifier auth.Verifier
	tokens   *auth.TokenIssuer
	sessions *auth.SessionStore
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(schema *validation.Schema, verifier auth.Verifier, tokens *auth.TokenIssuer, sessions *auth.SessionStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		schema:   schema,
		verifier: verifier,
		tokens:   tokens,
		sessions: sessions,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /admin-api/login.
// On success it sets the session cookie and also returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	req, err := h.schema.Login(body)
	if err != nil {
		verrs, _ := validation.AsErrors(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"code":    codeValidationFailed,
			"details": verrs,
		})
		return
	}

	identity, err := h.verifier.Verify(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			h.log.Info().Str("email", req.Email).Msg("Rejected sign in")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to verify credentials")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, expiresAt, err := h.tokens.Issue(identity)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.sessions.Save(c.Writer, c.Request, identity); err != nil {
		h.log.Error().Err(err).Msg("Failed to save session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.log.Info().Str("user_id", identity.ID).Msg("Admin signed in")
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
		"user":      identity,
	})
}

// Logout handles POST /admin-api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
		h.log.Error().Err(err).Msg("Failed to clear session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Session handles GET /admin-api/session
func (h *AuthHandler) Session(c *gin.Context) {
	identity, _ := auth.GetIdentity(c)
	c.JSON(http.StatusOK, gin.H{"user": identity})
}
