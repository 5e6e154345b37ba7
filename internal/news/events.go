package news

import (
	"encoding/json"

	"news-portal-api/internal/models"
	"news-portal-api/internal/realtime"
)

const (
	EventPublished   = "article_published"
	EventUpdated     = "article_updated"
	EventUnpublished = "article_unpublished"
)

// Event is pushed to websocket subscribers of TopicAll and of the article's category.
type Event struct {
	Type     string `json:"type"`
	ID       string `json:"articleId"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

func (s *Service) emit(kind string, a *models.Article) {
	if s.hub == nil {
		return
	}
	evt := Event{
		Type:     kind,
		ID:       a.ID,
		Slug:     a.Slug,
		Title:    a.Title,
		Category: a.CategorySlug,
	}
	bytes, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", a.Slug).Msg("encode event")
		return
	}
	delivered := s.hub.Broadcast(realtime.TopicAll, bytes)
	delivered += s.hub.Broadcast(a.CategorySlug, bytes)
	s.logger.Debug().Str("type", kind).Int("delivered", delivered).Msg("event broadcast")
}
