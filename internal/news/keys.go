package news

import "fmt"

const (
	keyCategories = "categories"
	keySitemap    = "sitemap"
)

func articleKey(slug string) string {
	return "article:" + slug
}

func listKey(q ArticleQuery) string {
	category := q.Category
	if category == "" {
		category = "*"
	}
	return fmt.Sprintf("articles:%s:%d:%d", category, q.Page, q.Limit)
}

func featuredKey(limit int) string {
	return fmt.Sprintf("featured:%d", limit)
}
