package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/auth"
	"github.com/portfolio-cms/internal/config"
	"github.com/portfolio-cms/internal/models"
	"github.com/portfolio-cms/internal/service"
	"github.com/portfolio-cms/internal/validation"
)

// Dependencies holds everything the router wires into handlers
type Dependencies struct {
	Services *service.Services
	Gate     auth.Gate
	Verifier auth.Verifier
	Tokens   *auth.TokenIssuer
	Sessions *auth.SessionStore

	// Health probes the backing store; nil in fallback mode
	Health func(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(deps Dependencies, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	router.SetHTMLTemplate(mustParseTemplates())

	schema := validation.NewSchema()

	// Servable detail pages, enumerated before the first request
	slugs := newSlugIndex(deps.Services, log)
	slugs.refresh(context.Background())

	// Handlers
	articleHandler := newContentHandler(deps.Services.Article, "Article", articleDecoder(schema), slugs.refresh, log)
	projectHandler := newContentHandler(deps.Services.Project, "Project", projectDecoder(schema), slugs.refresh, log)
	authHandler := NewAuthHandler(schema, deps.Verifier, deps.Tokens, deps.Sessions, log)
	formsHandler := NewFormsHandler(schema, log)
	contactHandler := NewContactHandler(schema, deps.Services.Contact, log)
	publicHandler := newPublicHandler(deps.Services, slugs, cfg.Site, log)

	// Health check
	router.GET("/health", healthCheck(deps))

	// Public pages
	site := router.Group("", slugs.staleRefresh())
	{
		site.GET("/", publicHandler.Home)
		site.GET("/work", publicHandler.Work)
		site.GET("/work/:slug", publicHandler.Project)
		site.GET("/insights", publicHandler.Insights)
		site.GET("/insights/:slug", publicHandler.Article)
		site.GET("/sitemap.xml", publicHandler.Sitemap)
	}
	router.POST("/api/contact", contactHandler.Submit)
	router.NoRoute(publicHandler.NotFound)

	// Admin API
	admin := router.Group("/admin-api")
	{
		admin.POST("/login", authHandler.Login)
		admin.POST("/logout", authHandler.Logout)

		gated := admin.Group("", auth.RequireIdentity(deps.Gate, log))
		gated.GET("/session", authHandler.Session)

		registerContent(gated.Group("/articles"), articleHandler)
		registerContent(gated.Group("/projects"), projectHandler)

		forms := gated.Group("/forms")
		{
			forms.POST("/derive", formsHandler.Derive)
			forms.POST("/articles/validate", formsHandler.ValidateArticle)
			forms.POST("/projects/validate", formsHandler.ValidateProject)
		}
	}

	return router
}

func registerContent[E models.Entity](group *gin.RouterGroup, h *contentHandler[E]) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// healthCheck returns the health status and where content is served from
func healthCheck(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":    "healthy",
			"storage":   deps.Services.Article.StorageMode(),
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "portfolio-cms",
		}

		if deps.Health != nil {
			ctx, cancel := contextWithTimeout(c, 2*time.Second)
			defer cancel()
			if err := deps.Health(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "unhealthy"
			}
		}

		c.JSON(status, body)
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS for the JSON endpoints
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAPIPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/admin-api") || strings.HasPrefix(path, "/api/")
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
