package news

import (
	"context"
	"errors"
	"fmt"

	"news-portal-api/internal/models"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
	defaultFeatured = 5
)

// ArticleQuery selects a page of published articles, optionally within one category.
type ArticleQuery struct {
	Category string
	Page     int
	Limit    int
}

func (q ArticleQuery) normalize() ArticleQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	return q
}

// ArticlePage is one page of a listing plus the total across all pages.
type ArticlePage struct {
	Articles []models.Article `json:"articles"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// ListCategories returns all categories in display order.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return cached(s, keyCategories, s.opts.CategoryTTL, func() ([]models.Category, error) {
		var cats []models.Category
		if err := s.db.WithContext(ctx).Order("position asc, slug asc").Find(&cats).Error; err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		return cats, nil
	})
}

// Category returns one category by slug.
func (s *Service) Category(ctx context.Context, slug string) (*models.Category, error) {
	cats, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cats {
		if cats[i].Slug == slug {
			c := cats[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", slug, ErrNotFound)
}

func (s *Service) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Article{}).Where("published = ?", true)
}

// ListArticles returns published articles newest first.
func (s *Service) ListArticles(ctx context.Context, q ArticleQuery) (ArticlePage, error) {
	q = q.normalize()
	if q.Category != "" {
		if _, err := s.Category(ctx, q.Category); err != nil {
			return ArticlePage{}, err
		}
	}

	return cached(s, listKey(q), s.opts.ListTTL, func() (ArticlePage, error) {
		// Count mutates the statement it runs on, so each query starts fresh.
		filtered := func() *gorm.DB {
			query := s.published(ctx)
			if q.Category != "" {
				query = query.Where("category_slug = ?", q.Category)
			}
			return query
		}

		var total int64
		if err := filtered().Count(&total).Error; err != nil {
			return ArticlePage{}, fmt.Errorf("count articles: %w", err)
		}

		articles := make([]models.Article, 0, q.Limit)
		err := filtered().
			Order("published_at desc").
			Limit(q.Limit).
			Offset((q.Page - 1) * q.Limit).
			Find(&articles).Error
		if err != nil {
			return ArticlePage{}, fmt.Errorf("list articles: %w", err)
		}
		return ArticlePage{Articles: articles, Total: total, Page: q.Page, Limit: q.Limit}, nil
	})
}

// Featured returns up to limit featured articles, newest first.
func (s *Service) Featured(ctx context.Context, limit int) ([]models.Article, error) {
	if limit < 1 {
		limit = defaultFeatured
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return cached(s, featuredKey(limit), s.opts.ListTTL, func() ([]models.Article, error) {
		articles := make([]models.Article, 0, limit)
		err := s.published(ctx).
			Where("featured = ?", true).
			Order("published_at desc").
			Limit(limit).
			Find(&articles).Error
		if err != nil {
			return nil, fmt.Errorf("list featured: %w", err)
		}
		return articles, nil
	})
}

// GetArticle returns a published article by slug. Misses are not cached.
func (s *Service) GetArticle(ctx context.Context, slug string) (*models.Article, error) {
	if slug == "" {
		return nil, fmt.Errorf("article: %w", ErrNotFound)
	}
	return cached(s, articleKey(slug), s.opts.ArticleTTL, func() (*models.Article, error) {
		var a models.Article
		err := s.published(ctx).Where("slug = ?", slug).First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article %q: %w", slug, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("get article %q: %w", slug, err)
		}
		return &a, nil
	})
}
