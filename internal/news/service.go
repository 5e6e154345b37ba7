// Package news serves published articles and categories from the database,
// memoizing reads in an expiring cache and invalidating it on every write.
package news

import (
	"errors"
	"sync/atomic"
	"time"

	"news-portal-api/internal/cache"
	"news-portal-api/internal/realtime"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("news: not found")
	ErrInvalidArticle = errors.New("news: invalid article")
	ErrDuplicateSlug  = errors.New("news: slug already in use")
)

// Options tunes how long each kind of read stays cached. Zero values pick the defaults.
type Options struct {
	CategoryTTL time.Duration
	ArticleTTL  time.Duration
	ListTTL     time.Duration
	SitemapTTL  time.Duration
	Clock       cache.Clock
}

const (
	defaultCategoryTTL = 30 * time.Minute
	defaultListTTL     = 2 * time.Minute
	defaultSitemapTTL  = 10 * time.Minute
)

// Service is the read/write API over articles and categories.
type Service struct {
	db     *gorm.DB
	cache  cache.Cache[any]
	hub    *realtime.Hub
	logger zerolog.Logger
	opts   Options

	// generation is bumped by every invalidation; a load that started in an
	// older generation must not leave its result in the cache.
	generation atomic.Uint64
}

// NewService wires a service. hub may be nil, in which case no events are published.
// ArticleTTL 0 defers to the cache's own default TTL.
func NewService(db *gorm.DB, c cache.Cache[any], hub *realtime.Hub, logger zerolog.Logger, opts Options) *Service {
	if opts.CategoryTTL <= 0 {
		opts.CategoryTTL = defaultCategoryTTL
	}
	if opts.ListTTL <= 0 {
		opts.ListTTL = defaultListTTL
	}
	if opts.SitemapTTL <= 0 {
		opts.SitemapTTL = defaultSitemapTTL
	}
	if opts.ArticleTTL < 0 {
		opts.ArticleTTL = 0
	}
	if opts.Clock == nil {
		opts.Clock = cache.SystemClock
	}
	return &Service{
		db:     db,
		cache:  c,
		hub:    hub,
		logger: logger.With().Str("component", "news").Logger(),
		opts:   opts,
	}
}

// CacheStats reports the cache counters when the configured cache exposes them.
func (s *Service) CacheStats() (cache.Stats, bool) {
	sc, ok := s.cache.(interface{ Stats() cache.Stats })
	if !ok {
		return cache.Stats{}, false
	}
	return sc.Stats(), true
}

// cached returns the value stored under key, or loads, stores and returns it.
// Load errors are never cached.
func cached[T any](s *Service, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if v, ok := s.cache.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
		s.logger.Warn().Str("key", key).Msg("cached value has unexpected type, reloading")
		s.cache.Delete(key)
	}

	gen := s.generation.Load()
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	if s.generation.Load() != gen {
		return v, nil
	}
	if err := s.cache.Set(key, v, ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	// invalidate bumps before it clears, so a Set that raced past the check
	// above is either wiped by that Clear or seen here.
	if s.generation.Load() != gen {
		s.cache.Delete(key)
	}
	return v, nil
}

// invalidate drops every cached read so no listing, article or sitemap outlives a write.
func (s *Service) invalidate(reason string) {
	s.generation.Add(1)
	s.cache.Clear()
	s.logger.Debug().Str("reason", reason).Msg("cache invalidated")
}
