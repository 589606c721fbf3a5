package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-cms/internal/api"
	"github.com/portfolio-cms/internal/auth"
	"github.com/portfolio-cms/internal/config"
	"github.com/portfolio-cms/internal/fallback"
	"github.com/portfolio-cms/internal/mocks"
	"github.com/portfolio-cms/internal/models"
	"github.com/portfolio-cms/internal/service"
	"github.com/portfolio-cms/internal/validation"
)

const testSecret = "test-session-secret-0123456789"

var admin = &auth.Identity{ID: "admin-1", Email: "admin@example.com", Name: "Admin"}

type testEnv struct {
	router   *gin.Engine
	articles *mocks.MockContentRepository[*models.Article]
	projects *mocks.MockContentRepository[*models.Project]
	contact  *mocks.MockContactService
	gate     *mocks.MockGate
	dataset  *fallback.Dataset
}

type envOption func(*config.Config, *api.Dependencies)

func setupTestRouter(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	dataset := fallback.MustLoad()

	env := &testEnv{
		articles: mocks.NewMockArticleRepository(),
		projects: mocks.NewMockProjectRepository(),
		contact:  mocks.NewMockContactService(),
		gate:     &mocks.MockGate{Identity: admin},
		dataset:  dataset,
	}
	env.articles.Seed(dataset.Articles()...)
	env.projects.Seed(dataset.Projects()...)

	stealth := dataset.Projects()[0]
	stealth.ID = "00000000-0000-0000-0000-0000000000aa"
	stealth.Slug = "stealth-project"
	stealth.Published = false
	stealth.PublishedAt = nil
	env.projects.Seed(stealth)

	services := &service.Services{
		Article: service.NewContentService[*models.Article](env.articles, dataset.Articles, log),
		Project: service.NewContentService[*models.Project](env.projects, dataset.Projects, log),
		Contact: env.contact,
	}

	cfg := &config.Config{
		Site: config.SiteConfig{
			URL:    "https://portfolio.example.com/",
			Name:   "Test Portfolio",
			Author: "Test Author",
		},
	}

	deps := api.Dependencies{
		Services: services,
		Gate:     env.gate,
		Verifier: &mocks.MockVerifier{Email: admin.Email, Password: "correct-horse", Identity: admin},
		Tokens:   auth.NewTokenIssuer(testSecret, time.Hour, time.Now),
		Sessions: auth.NewSessionStore(testSecret, time.Hour, false),
	}

	for _, opt := range opts {
		opt(cfg, &deps)
	}

	env.router = api.NewRouter(deps, cfg, log)
	return env
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) document(t *testing.T, path string) (*goquery.Document, int) {
	t.Helper()
	w := e.do(http.MethodGet, path, nil)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc, w.Code
}

type errorResponse struct {
	Error   string                  `json:"error"`
	Code    string                  `json:"code"`
	Details []validation.FieldError `json:"details"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func articleInput(e *testEnv, slug string) models.ArticleInput {
	in := e.dataset.Articles()[0].ArticleInput
	in.Slug = slug
	in.Title = "Shipping Search in a Week"
	return in
}

func projectInput(e *testEnv, slug string) models.ProjectInput {
	in := e.dataset.Projects()[0].ProjectInput
	in.Slug = slug
	in.Name = "Quiet Launch"
	return in
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, service.ModeDatabase, response["storage"])
}

func TestHealthEndpoint_StorageDown(t *testing.T) {
	env := setupTestRouter(t, func(_ *config.Config, deps *api.Dependencies) {
		deps.Health = func(ctx context.Context) error { return errors.New("connection refused") }
	})

	w := env.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}

// --- admin endpoints ---

func TestAdmin_UnauthorizedBeforeValidation(t *testing.T) {
	env := setupTestRouter(t)
	env.gate.Identity = nil
	calls := env.projects.Calls

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"valid project create", http.MethodPost, "/admin-api/projects", projectInput(env, "quiet-launch")},
		{"invalid project create", http.MethodPost, "/admin-api/projects", `{"name":""}`},
		{"malformed body", http.MethodPut, "/admin-api/projects/00000000-0000-0000-0000-0000000000aa", `not json`},
		{"list", http.MethodGet, "/admin-api/projects", nil},
		{"delete", http.MethodDelete, "/admin-api/projects/00000000-0000-0000-0000-0000000000aa", nil},
		{"session", http.MethodGet, "/admin-api/session", nil},
		{"derive", http.MethodPost, "/admin-api/forms/derive", `{"title":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}

	assert.Equal(t, calls, env.projects.Calls, "storage must not be touched")
	assert.Len(t, env.projects.Items, 4)
}

func TestAdmin_CreateArticle(t *testing.T) {
	env := setupTestRouter(t)

	in := articleInput(env, "shipping-search")
	in.ReadTime = ""
	w := env.do(http.MethodPost, "/admin-api/articles", in)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, admin.ID, created.AuthorID)
	assert.Equal(t, "shipping-search", created.Slug)
	assert.NotEmpty(t, created.ReadTime)
	assert.NotNil(t, created.PublishedAt)

	stored, ok := env.articles.Items[created.ID]
	require.True(t, ok)
	assert.Equal(t, in.Title, stored.Title)

	// The new page is servable straight away
	doc, code := env.document(t, "/insights/shipping-search")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, in.Title, doc.Find("article.insight h1").Text())
}

func TestAdmin_CreateValidationFailed(t *testing.T) {
	env := setupTestRouter(t)

	in := articleInput(env, "Not A Slug")
	in.Excerpt = "short"
	w := env.do(http.MethodPost, "/admin-api/articles", in)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, "VALIDATION_FAILED", resp.Code)
	fields := map[string]string{}
	for _, d := range resp.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "At least 10 characters", fields["excerpt"])
	assert.Contains(t, fields, "slug")
	assert.Len(t, env.articles.Items, 3)
}

func TestAdmin_CreateSlugConflict(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/admin-api/articles", articleInput(env, "my-post"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/admin-api/articles", articleInput(env, "my-post"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, "SLUG_CONFLICT", resp.Code)
	assert.Equal(t, "Slug already exists", resp.Error)
	assert.Empty(t, resp.Details)
}

func TestAdmin_SlugConflictOnUnpublishedEntity(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/admin-api/projects", projectInput(env, "stealth-project"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SLUG_CONFLICT", decodeError(t, w).Code)
}

func TestAdmin_UpdateMissingIsNotFound(t *testing.T) {
	env := setupTestRouter(t)

	bodies := map[string]interface{}{
		"valid":     articleInput(env, "anything"),
		"invalid":   `{"title":""}`,
		"malformed": `not json`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			w := env.do(http.MethodPut, "/admin-api/articles/11111111-2222-3333-4444-555555555555", body)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Article not found", decodeError(t, w).Error)
		})
	}
}

func TestAdmin_UpdateProject(t *testing.T) {
	env := setupTestRouter(t)
	existing := env.dataset.Projects()[1]

	in := existing.ProjectInput
	in.Name = "Nexus AI, revisited"
	w := env.do(http.MethodPut, "/admin-api/projects/"+existing.ID, in)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, existing.AuthorID, updated.AuthorID)
	assert.True(t, existing.CreatedAt.Equal(updated.CreatedAt))
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, existing.PublishedAt.Equal(*updated.PublishedAt), "publishedAt kept across edits")

	// Renaming onto another entity's slug conflicts, keeping its own does not
	in.Slug = "launchpad"
	w = env.do(http.MethodPut, "/admin-api/projects/"+existing.ID, in)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SLUG_CONFLICT", decodeError(t, w).Code)
}

func TestAdmin_GetListDelete(t *testing.T) {
	env := setupTestRouter(t)
	target := env.dataset.Articles()[2]

	w := env.do(http.MethodGet, "/admin-api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var projects []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Len(t, projects, 4, "drafts are listed for admins")

	w = env.do(http.MethodGet, "/admin-api/articles/"+target.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodDelete, "/admin-api/articles/"+target.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Article deleted"}`, w.Body.String())

	w = env.do(http.MethodGet, "/admin-api/articles/"+target.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(http.MethodDelete, "/admin-api/articles/"+target.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, code := env.document(t, "/insights/"+target.Slug)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdmin_StorageFailureIsGeneric(t *testing.T) {
	env := setupTestRouter(t)
	env.articles.CreateError = errors.New("pq: connection reset by peer")

	w := env.do(http.MethodPost, "/admin-api/articles", articleInput(env, "fresh-slug"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestAdmin_FallbackModeRejectsWrites(t *testing.T) {
	env := setupTestRouter(t, func(_ *config.Config, deps *api.Dependencies) {
		dataset := fallback.MustLoad()
		deps.Services.Article = service.NewContentService[*models.Article](nil, dataset.Articles, zerolog.Nop())
	})

	w := env.do(http.MethodPost, "/admin-api/articles", articleInput(env, "fresh-slug"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = env.do(http.MethodGet, "/health", nil)
	assert.Contains(t, w.Body.String(), service.ModeFallback)
}

// --- login and session ---

func TestLogin(t *testing.T) {
	env := setupTestRouter(t, func(_ *config.Config, deps *api.Dependencies) {
		deps.Gate = auth.NewAuthenticator(deps.Tokens, deps.Sessions)
	})

	w := env.do(http.MethodPost, "/admin-api/login", `{"email":"admin@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string        `json:"token"`
		User  auth.Identity `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, admin.ID, resp.User.ID)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, auth.SessionName, cookies[0].Name)

	// Bearer token
	req := httptest.NewRequest(http.MethodGet, "/admin-api/session", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), admin.Email)

	// Session cookie
	req = httptest.NewRequest(http.MethodGet, "/admin-api/session", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// No credentials
	rec = env.do(http.MethodGet, "/admin-api/session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_Rejected(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/admin-api/login", `{"email":"admin@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeError(t, w).Error)
	assert.Empty(t, w.Result().Cookies())

	w = env.do(http.MethodPost, "/admin-api/login", `{"email":"not-an-email","password":"123"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "VALIDATION_FAILED", resp.Code)
	assert.Len(t, resp.Details, 2)
}

func TestLogout_ExpiresCookie(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/admin-api/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, auth.SessionName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}

// --- form helpers ---

func TestForms_Derive(t *testing.T) {
	env := setupTestRouter(t)

	body := map[string]string{
		"title":   "Why Most AI Products Fail (And How to Build Ones That Don't)",
		"content": strings.TrimSpace(strings.Repeat("word ", 201)),
	}
	w := env.do(http.MethodPost, "/admin-api/forms/derive", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.DeriveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "why-most-ai-products-fail-and-how-to-build-ones-that-dont", resp.Slug)
	assert.Equal(t, 201, resp.WordCount)
	assert.Equal(t, 2, resp.ReadMinutes)
	assert.Equal(t, "2 min read", resp.ReadTime)
}

func TestForms_Validate(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/admin-api/forms/projects/validate", projectInput(env, "quiet-launch"))
	require.Equal(t, http.StatusOK, w.Code)
	var ok api.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Errors)

	w = env.do(http.MethodPost, "/admin-api/forms/articles/validate", `{"title":"","slug":"Bad Slug"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var bad api.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bad))
	assert.False(t, bad.Valid)
	assert.True(t, bad.Errors.Has("title"))
	assert.True(t, bad.Errors.Has("slug"))

	// Nothing is stored
	assert.Len(t, env.projects.Items, 4)
	assert.Len(t, env.articles.Items, 3)
}

// --- contact ---

func TestContact(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com","message":"Let's talk"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.contact.Submitted, 1)
	assert.Equal(t, "Ada", env.contact.Submitted[0].Name)

	w = env.do(http.MethodPost, "/api/contact", `{"name":"Ada","email":"nope","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, w).Code)

	env.contact.Err = errors.New("boom")
	w = env.do(http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com","message":"again"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

// --- public pages ---

func TestPublic_Listings(t *testing.T) {
	env := setupTestRouter(t)

	doc, code := env.document(t, "/work")
	require.Equal(t, http.StatusOK, code)
	var names []string
	doc.Find(".project-card h3").Each(func(_ int, s *goquery.Selection) {
		names = append(names, s.Text())
	})
	assert.Equal(t, []string{"Surfgeo", "Nexus AI", "Launchpad"}, names, "newest first, drafts hidden")

	doc, code = env.document(t, "/insights")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, doc.Find(".article-card").Length())

	doc, code = env.document(t, "/")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, doc.Find(".featured-work .project-card").Length())
	assert.Equal(t, "Test Portfolio", doc.Find("title").Text())
}

func TestPublic_UnpublishedProjectIsNotFound(t *testing.T) {
	env := setupTestRouter(t)

	unpublished, code := env.document(t, "/work/stealth-project")
	assert.Equal(t, http.StatusNotFound, code)

	missing, code := env.document(t, "/work/no-such-project")
	assert.Equal(t, http.StatusNotFound, code)

	assert.Equal(t, missing.Find("main").Text(), unpublished.Find("main").Text())
	assert.Equal(t, "Page not found", unpublished.Find("h1").Text())
}

func TestPublic_ProjectDetail(t *testing.T) {
	env := setupTestRouter(t)

	doc, code := env.document(t, "/work/nexus-ai")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Nexus AI", doc.Find(".case-study h1").Text())
	assert.Equal(t, "https://portfolio.example.com/work/nexus-ai", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))

	prev, _ := doc.Find(".project-nav a.prev").Attr("href")
	next, _ := doc.Find(".project-nav a.next").Attr("href")
	assert.Equal(t, "/work/surfgeo", prev)
	assert.Equal(t, "/work/launchpad", next)
}

func TestPublic_ProjectLinksOnlyToServableNeighbours(t *testing.T) {
	env := setupTestRouter(t)

	// Unpublish launchpad through the admin API
	launchpad := env.dataset.Projects()[2]
	in := launchpad.ProjectInput
	in.Published = false
	w := env.do(http.MethodPut, "/admin-api/projects/"+launchpad.ID, in)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	doc, code := env.document(t, "/work/nexus-ai")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, doc.Find(".project-nav a.prev").Length())
	assert.Equal(t, 0, doc.Find(".project-nav a.next").Length())
}

func TestPublic_ArticleMarkdown(t *testing.T) {
	env := setupTestRouter(t)

	article := env.dataset.Articles()[0]
	article.ID = "00000000-0000-0000-0000-0000000000bb"
	article.Slug = "markdown-post"
	article.Content = "## Heading\n\nSome **bold** text.\n\n<script>alert(1)</script>\n"
	env.articles.Seed(article)

	doc, code := env.document(t, "/insights/markdown-post")
	require.Equal(t, http.StatusOK, code)

	body := doc.Find(".article-body")
	assert.Equal(t, "Heading", body.Find("h2").Text())
	assert.Equal(t, "bold", body.Find("strong").Text())
	assert.Equal(t, 0, body.Find("script").Length())
}

func TestPublic_StorageFailureServesFallback(t *testing.T) {
	env := setupTestRouter(t)
	env.projects.Err = errors.New("pq: too many connections")
	env.articles.Err = errors.New("pq: too many connections")

	doc, code := env.document(t, "/work")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, doc.Find(".project-card").Length())
	assert.NotContains(t, doc.Text(), "too many connections")

	doc, code = env.document(t, "/insights/designing-for-conversion")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, doc.Find("h1").Text(), "Designing for Conversion")
}

func TestPublic_StrictParamsSkipsStorage(t *testing.T) {
	env := setupTestRouter(t, func(cfg *config.Config, _ *api.Dependencies) {
		cfg.Site.StrictParams = true
	})
	calls := env.projects.Calls

	_, code := env.document(t, "/work/never-enumerated")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, calls, env.projects.Calls)

	_, code = env.document(t, "/work/surfgeo")
	assert.Equal(t, http.StatusOK, code)
}

func TestPublic_UnknownRoutes(t *testing.T) {
	env := setupTestRouter(t)

	doc, code := env.document(t, "/does/not/exist")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Page not found", doc.Find("h1").Text())

	w := env.do(http.MethodGet, "/admin-api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestSitemap(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(http.MethodGet, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, "<loc>https://portfolio.example.com/work/surfgeo</loc>")
	assert.Contains(t, body, "<loc>https://portfolio.example.com/insights/why-most-ai-products-fail</loc>")
	assert.NotContains(t, body, "stealth-project")
}
