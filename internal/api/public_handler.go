package api

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/apperrors"
	"github.com/portfolio-cms/internal/config"
	"github.com/portfolio-cms/internal/service"
)

// Number of entries of each type shown on the home page
const homeLimit = 3

// PublicHandler renders the public site. Entities are passed to templates
// unmodified; an unknown or unpublished slug renders the not-found page.
type PublicHandler struct {
	services *service.Services
	slugs    *slugIndex
	site     config.SiteConfig
	log      zerolog.Logger
}

// newPublicHandler creates a new PublicHandler
func newPublicHandler(services *service.Services, slugs *slugIndex, site config.SiteConfig, log zerolog.Logger) *PublicHandler {
	site.URL = strings.TrimRight(site.URL, "/")
	return &PublicHandler{
		services: services,
		slugs:    slugs,
		site:     site,
		log:      log.With().Str("handler", "public").Logger(),
	}
}

// Home handles GET /
func (h *PublicHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	p := h.pageFor("/")
	p.Description = "Case studies and insights by " + h.site.Author
	p.Projects = h.services.Project.ListPublished(ctx)
	if len(p.Projects) > homeLimit {
		p.Projects = p.Projects[:homeLimit]
	}
	p.Articles = h.services.Article.ListPublished(ctx)
	if len(p.Articles) > homeLimit {
		p.Articles = p.Articles[:homeLimit]
	}

	c.HTML(http.StatusOK, "home.html", p)
}

// Work handles GET /work
func (h *PublicHandler) Work(c *gin.Context) {
	p := h.pageFor("/work")
	p.Title = "Work"
	p.Projects = h.services.Project.ListPublished(c.Request.Context())
	c.HTML(http.StatusOK, "work.html", p)
}

// Insights handles GET /insights
func (h *PublicHandler) Insights(c *gin.Context) {
	p := h.pageFor("/insights")
	p.Title = "Insights"
	p.Articles = h.services.Article.ListPublished(c.Request.Context())
	c.HTML(http.StatusOK, "insights.html", p)
}

// Project handles GET /work/:slug
func (h *PublicHandler) Project(c *gin.Context) {
	slug := c.Param("slug")
	if h.site.StrictParams && !h.slugs.hasProject(slug) {
		h.NotFound(c)
		return
	}

	project, err := h.services.Project.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.missing(c, slug, err)
		return
	}

	p := h.pageFor("/work/" + slug)
	p.Project = project
	p.Title = firstNonEmpty(project.SEOTitle, project.Name)
	p.Description = firstNonEmpty(project.SEODescription, project.ShortDescription)
	p.Image = firstNonEmpty(project.SEOOgImage, project.HeroImageURL, project.ThumbnailURL)
	if h.slugs.hasProject(project.PrevProjectSlug) {
		p.PrevProject = project.PrevProjectSlug
	}
	if h.slugs.hasProject(project.NextProjectSlug) {
		p.NextProject = project.NextProjectSlug
	}

	c.HTML(http.StatusOK, "project.html", p)
}

// Article handles GET /insights/:slug
func (h *PublicHandler) Article(c *gin.Context) {
	slug := c.Param("slug")
	if h.site.StrictParams && !h.slugs.hasArticle(slug) {
		h.NotFound(c)
		return
	}

	article, err := h.services.Article.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.missing(c, slug, err)
		return
	}

	p := h.pageFor("/insights/" + slug)
	p.Article = article
	p.Title = firstNonEmpty(article.SEOTitle, article.Title)
	p.Description = firstNonEmpty(article.SEODescription, article.Excerpt)
	p.Image = firstNonEmpty(article.SEOOgImage, article.FeaturedImage)

	c.HTML(http.StatusOK, "article.html", p)
}

// NotFound renders the uniform not-found page, or a JSON 404 for API paths
func (h *PublicHandler) NotFound(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	p := h.pageFor("")
	p.Title = "Page not found"
	c.HTML(http.StatusNotFound, "not_found.html", p)
}

func (h *PublicHandler) missing(c *gin.Context, slug string, err error) {
	if !errors.Is(err, apperrors.ErrNotFound) {
		h.log.Error().Err(err).Str("slug", slug).Msg("Failed to resolve detail page")
	}
	h.NotFound(c)
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap handles GET /sitemap.xml
func (h *PublicHandler) Sitemap(c *gin.Context) {
	articles, projects := h.slugs.snapshot()

	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.site.URL, ChangeFreq: "weekly", Priority: 1},
			{Loc: h.site.URL + "/work", ChangeFreq: "weekly", Priority: 0.9},
			{Loc: h.site.URL + "/insights", ChangeFreq: "weekly", Priority: 0.9},
		},
	}
	for _, slug := range projects {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.site.URL + "/work/" + slug, ChangeFreq: "monthly", Priority: 0.8})
	}
	for _, slug := range articles {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.site.URL + "/insights/" + slug, ChangeFreq: "weekly", Priority: 0.7})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode sitemap")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

func (h *PublicHandler) pageFor(path string) page {
	p := page{Site: h.site}
	if path != "" {
		p.Canonical = h.site.URL + path
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
