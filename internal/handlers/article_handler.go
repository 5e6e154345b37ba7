package handlers

import (
	"net/http"
	"strconv"

	"news-portal-api/internal/news"

	"github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

// ListArticles handles GET /api/articles
// Query params: category (slug), page (default 1), limit (default 10, max 50).
func (h *Handler) ListArticles(c *gin.Context) {
	page, err := h.news.ListArticles(c.Request.Context(), news.ArticleQuery{
		Category: c.Query("category"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	})
	if err != nil {
		h.fail(c, err, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": page.Articles,
		"count":    len(page.Articles), // number of items in this page
		"total":    page.Total,         // total articles (all pages) for current filter
		"page":     page.Page,
		"limit":    page.Limit,
	})
}

// FeaturedArticles handles GET /api/articles/featured
func (h *Handler) FeaturedArticles(c *gin.Context) {
	articles, err := h.news.Featured(c.Request.Context(), queryInt(c, "limit", 5))
	if err != nil {
		h.fail(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// GetArticle handles GET /api/articles/:slug
func (h *Handler) GetArticle(c *gin.Context) {
	article, err := h.news.GetArticle(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err, "Article not found")
		return
	}
	c.JSON(http.StatusOK, article)
}

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.news.ListCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": cats,
		"count":      len(cats),
	})
}
