package api

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/portfolio-cms/internal/config"
	"github.com/portfolio-cms/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// page is the data every public template receives
type page struct {
	Site        config.SiteConfig
	Title       string
	Description string
	Image       string
	Canonical   string

	Articles []*models.Article
	Projects []*models.Project
	Article  *models.Article
	Project  *models.Project

	// Neighbouring case studies, set only when servable
	PrevProject string
	NextProject string
}

// markdown renders CommonMark plus tables and strikethrough. Raw HTML in the
// source is omitted from the output.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var templateFuncs = template.FuncMap{
	"markdown": renderMarkdown,
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"iso": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
}

func mustParseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}
