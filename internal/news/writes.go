package news

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"news-portal-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slugs are lowercase words joined by single hyphens. Bengali letters and
// combining marks are allowed.
var slugPattern = regexp.MustCompile(`^[\p{Ll}\p{Lo}\p{M}\p{Nd}]+(?:-[\p{Ll}\p{Lo}\p{M}\p{Nd}]+)*$`)

// ArticleInput is the payload for publishing a new article.
type ArticleInput struct {
	Slug     string
	Title    string
	Summary  string
	Body     string
	Category string
	Author   string
	ImageURL string
	Featured bool
}

// ArticleUpdate changes the fields that are non-nil.
type ArticleUpdate struct {
	Title    *string
	Summary  *string
	Body     *string
	Category *string
	Author   *string
	ImageURL *string
	Featured *bool
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArticle, fmt.Sprintf(format, args...))
}

func (s *Service) checkCategory(ctx context.Context, slug string) error {
	if strings.TrimSpace(slug) == "" {
		return invalid("category is required")
	}
	if _, err := s.Category(ctx, slug); err != nil {
		if errors.Is(err, ErrNotFound) {
			return invalid("unknown category %q", slug)
		}
		return err
	}
	return nil
}

// Publish stores a new, immediately published article.
func (s *Service) Publish(ctx context.Context, in ArticleInput) (*models.Article, error) {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, invalid("title is required")
	}
	if !slugPattern.MatchString(in.Slug) {
		return nil, invalid("malformed slug %q", in.Slug)
	}
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Article{}).Where("slug = ?", in.Slug).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, in.Slug)
	}

	summary := strings.TrimSpace(in.Summary)
	if summary == "" {
		summary = DeriveSummary(in.Body, SummaryLength)
	}

	now := s.opts.Clock.Now()
	article := models.Article{
		ID:           uuid.NewString(),
		Slug:         in.Slug,
		Title:        in.Title,
		Summary:      summary,
		Body:         in.Body,
		CategorySlug: in.Category,
		Author:       in.Author,
		ImageURL:     in.ImageURL,
		Featured:     in.Featured,
		Published:    true,
		PublishedAt:  &now,
	}
	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.invalidate("publish")
	s.emit(EventPublished, &article)
	s.logger.Info().Str("slug", article.Slug).Str("category", article.CategorySlug).Msg("article published")
	return &article, nil
}

func (s *Service) load(ctx context.Context, slug string) (*models.Article, error) {
	var a models.Article
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("article %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load article %q: %w", slug, err)
	}
	return &a, nil
}

// Update modifies an article. When the body changes without an explicit summary
// the summary is derived again.
func (s *Service) Update(ctx context.Context, slug string, up ArticleUpdate) (*models.Article, error) {
	a, err := s.load(ctx, slug)
	if err != nil {
		return nil, err
	}

	if up.Title != nil {
		title := strings.TrimSpace(*up.Title)
		if title == "" {
			return nil, invalid("title is required")
		}
		a.Title = title
	}
	if up.Category != nil {
		if err := s.checkCategory(ctx, *up.Category); err != nil {
			return nil, err
		}
		a.CategorySlug = *up.Category
	}
	if up.Body != nil {
		a.Body = *up.Body
		if up.Summary == nil {
			a.Summary = DeriveSummary(a.Body, SummaryLength)
		}
	}
	if up.Summary != nil {
		a.Summary = strings.TrimSpace(*up.Summary)
	}
	if up.Author != nil {
		a.Author = *up.Author
	}
	if up.ImageURL != nil {
		a.ImageURL = *up.ImageURL
	}
	if up.Featured != nil {
		a.Featured = *up.Featured
	}

	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return nil, fmt.Errorf("update article %q: %w", slug, err)
	}

	s.invalidate("update")
	if a.Published {
		s.emit(EventUpdated, a)
	}
	return a, nil
}

// Unpublish hides an article from every public read.
func (s *Service) Unpublish(ctx context.Context, slug string) error {
	a, err := s.load(ctx, slug)
	if err != nil {
		return err
	}
	if !a.Published {
		return nil
	}

	err = s.db.WithContext(ctx).Model(a).Updates(map[string]any{"published": false}).Error
	if err != nil {
		return fmt.Errorf("unpublish article %q: %w", slug, err)
	}
	a.Published = false

	s.invalidate("unpublish")
	s.emit(EventUnpublished, a)
	s.logger.Info().Str("slug", slug).Msg("article unpublished")
	return nil
}
