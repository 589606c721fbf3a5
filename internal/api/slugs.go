package api

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-cms/internal/service"
)

// Minimum delay between rebuilds of an index that was built from fallback
// slugs while storage is configured
const staleRetryInterval = 30 * time.Second

// slugIndex is the set of servable detail pages. It is built before the
// first request, rebuilt after every admin write and rebuilt again once
// storage answers after an outage.
type slugIndex struct {
	services *service.Services
	log      zerolog.Logger
	now      func() time.Time
	retry    time.Duration

	// held for the whole list-and-install cycle
	refreshMu   sync.Mutex
	lastAttempt time.Time

	mu       sync.RWMutex
	stale    bool
	articles []string
	projects []string
	article  map[string]struct{}
	project  map[string]struct{}
}

func newSlugIndex(services *service.Services, log zerolog.Logger) *slugIndex {
	return &slugIndex{
		services: services,
		log:      log.With().Str("component", "slug_index").Logger(),
		now:      time.Now,
		retry:    staleRetryInterval,
		article:  map[string]struct{}{},
		project:  map[string]struct{}{},
	}
}

// refresh re-enumerates published slugs for both content types. Calls are
// serialized so a slower rebuild never installs an older listing over a
// newer one.
func (i *slugIndex) refresh(ctx context.Context) {
	i.refreshMu.Lock()
	defer i.refreshMu.Unlock()
	i.rebuild(ctx)
}

// refreshIfStale rebuilds an index that was served from fallback slugs,
// at most once per retry interval. It never waits for a rebuild already
// in progress.
func (i *slugIndex) refreshIfStale(ctx context.Context) {
	if !i.isStale() || !i.refreshMu.TryLock() {
		return
	}
	defer i.refreshMu.Unlock()

	if !i.isStale() || i.now().Sub(i.lastAttempt) < i.retry {
		return
	}
	i.rebuild(ctx)
}

// staleRefresh retries a stale index before public pages are served
func (i *slugIndex) staleRefresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		i.refreshIfStale(c.Request.Context())
		c.Next()
	}
}

// rebuild must be called with refreshMu held
func (i *slugIndex) rebuild(ctx context.Context) {
	i.lastAttempt = i.now()
	articles, articlesDegraded := i.services.Article.ListSlugs(ctx)
	projects, projectsDegraded := i.services.Project.ListSlugs(ctx)
	stale := articlesDegraded || projectsDegraded

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.stale && !stale {
		i.log.Info().Msg("Storage reachable again, slug index rebuilt from storage")
	}
	i.stale = stale
	i.articles = articles
	i.projects = projects
	i.article = toSet(articles)
	i.project = toSet(projects)

	i.log.Debug().Int("articles", len(articles)).Int("projects", len(projects)).Bool("stale", stale).Msg("Slug index rebuilt")
}

func (i *slugIndex) isStale() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.stale
}

func (i *slugIndex) hasArticle(slug string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.article[slug]
	return ok
}

func (i *slugIndex) hasProject(slug string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.project[slug]
	return ok
}

// snapshot returns copies of both slug lists in listing order
func (i *slugIndex) snapshot() (articles, projects []string) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]string(nil), i.articles...), append([]string(nil), i.projects...)
}

func toSet(slugs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		set[s] = struct{}{}
	}
	return set
}
