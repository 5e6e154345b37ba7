package routes

import (
	"net/http"

	"news-portal-api/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(h *handlers.Handler) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())

	// CORS middleware (for frontend integration); the API is read-only
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "News portal API is running",
		})
	})

	ginRouter.GET("/sitemap.xml", h.Sitemap)
	ginRouter.GET("/robots.txt", h.Robots)
	ginRouter.GET("/ws", h.LiveFeed)

	api := ginRouter.Group("/api")
	{
		api.GET("/categories", h.ListCategories)
		api.GET("/articles", h.ListArticles)
		api.GET("/articles/featured", h.FeaturedArticles)
		api.GET("/articles/:slug", h.GetArticle)
		api.GET("/cache/stats", h.CacheStats)
	}

	return ginRouter
}
