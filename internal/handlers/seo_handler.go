package handlers

import (
	"net/http"

	"news-portal-api/internal/news"

	"github.com/gin-gonic/gin"
)

// Sitemap handles GET /sitemap.xml
func (h *Handler) Sitemap(c *gin.Context) {
	body, err := h.news.Sitemap(c.Request.Context(), h.siteURL)
	if err != nil {
		h.fail(c, err, "Not found")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots handles GET /robots.txt
func (h *Handler) Robots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(news.Robots(h.siteURL)))
}

// CacheStats handles GET /api/cache/stats
func (h *Handler) CacheStats(c *gin.Context) {
	stats, ok := h.news.CacheStats()
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Cache statistics unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":    stats,
		"hitRatio": stats.HitRatio(),
	})
}
