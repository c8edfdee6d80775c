package syndication

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type sitemapURL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

// Sitemap handles GET /sitemap.xml
func (h *Handler) Sitemap(c *gin.Context) {
	snap := h.store.Snapshot(c.Request.Context())
	base := strings.TrimRight(h.site.URL, "/")

	urls := []sitemapURL{{
		Loc: base, LastMod: h.now(),
		ChangeFreq: "daily", Priority: 1.0,
	}}
	for _, p := range snap.Posts {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/gallery/%s", base, p.Slug),
			LastMod:    p.Date,
			ChangeFreq: "monthly",
			Priority:   0.8,
		})
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(200, renderSitemap(urls))
}

// SitemapIndex handles GET /sitemap-index.xml. The catalog fits in a single
// sitemap, so the index always points at sitemap.xml alone.
func (h *Handler) SitemapIndex(c *gin.Context) {
	base := strings.TrimRight(h.site.URL, "/")
	xml := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap>
    <loc>%s/sitemap.xml</loc>
    <lastmod>%s</lastmod>
  </sitemap>
</sitemapindex>`, escapeXML(base), h.now().Format("2006-01-02"))

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(200, xml)
}

func renderSitemap(urls []sitemapURL) string {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`
	for _, u := range urls {
		xml += fmt.Sprintf(`  <url>
    <loc>%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, escapeXML(u.Loc), u.LastMod.Format("2006-01-02"), u.ChangeFreq, u.Priority)
	}
	xml += `</urlset>`
	return xml
}

// escapeXML replaces XML special characters in element content.
func escapeXML(s string) string {
	result := ""
	for _, r := range s {
		switch r {
		case '&':
			result += "&amp;"
		case '<':
			result += "&lt;"
		case '>':
			result += "&gt;"
		case '"':
			result += "&quot;"
		default:
			result += string(r)
		}
	}
	return result
}
