package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"news-portal-api/internal/models"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders sitemap.xml for the home page, every category and every
// published article under siteURL.
func (s *Service) Sitemap(ctx context.Context, siteURL string) ([]byte, error) {
	base := strings.TrimRight(siteURL, "/")
	return cached(s, keySitemap+":"+base, s.opts.SitemapTTL, func() ([]byte, error) {
		cats, err := s.ListCategories(ctx)
		if err != nil {
			return nil, err
		}

		var articles []models.Article
		err = s.published(ctx).
			Select("slug", "updated_at", "published_at").
			Order("published_at desc").
			Find(&articles).Error
		if err != nil {
			return nil, fmt.Errorf("sitemap articles: %w", err)
		}

		set := urlset{Xmlns: sitemapNS}
		set.URLs = append(set.URLs, sitemapURL{Loc: base + "/", ChangeFreq: "hourly", Priority: "1.0"})
		for _, c := range cats {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        base + "/category/" + url.PathEscape(c.Slug),
				ChangeFreq: "hourly",
				Priority:   "0.8",
			})
		}
		for _, a := range articles {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:      base + "/article/" + url.PathEscape(a.Slug),
				LastMod:  a.UpdatedAt.UTC().Format(time.RFC3339),
				Priority: "0.6",
			})
		}

		out, err := xml.MarshalIndent(set, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode sitemap: %w", err)
		}
		return append([]byte(xml.Header), out...), nil
	})
}

// Robots renders robots.txt pointing crawlers at the sitemap.
func Robots(siteURL string) string {
	base := strings.TrimRight(siteURL, "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", base)
	return b.String()
}
