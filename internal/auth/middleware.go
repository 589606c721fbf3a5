package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const ginIdentityKey = "auth.identity"

// RequireIdentity aborts with 401 unless gate authorizes the request. It
// runs before any body parsing or storage access.
func RequireIdentity(gate Gate, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gate.Authorize(c.Request)
		if err != nil || id == nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Unauthorized admin request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(ginIdentityKey, id)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// GetIdentity returns the identity set by RequireIdentity
func GetIdentity(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(ginIdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}
