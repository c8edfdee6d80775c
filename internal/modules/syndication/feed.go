package syndication

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const feedItemLimit = 20

type feedItem struct {
	Title    string
	Link     string
	GUID     string
	Category string
	PubDate  time.Time
	Content  string
}

// Feed handles GET /rss.xml
func (h *Handler) Feed(c *gin.Context) {
	snap := h.store.Snapshot(c.Request.Context())
	base := strings.TrimRight(h.site.URL, "/")

	posts := snap.Posts
	if len(posts) > feedItemLimit {
		posts = posts[:feedItemLimit]
	}
	items := make([]feedItem, len(posts))
	for i, p := range posts {
		link := fmt.Sprintf("%s/gallery/%s", base, p.Slug)
		items[i] = feedItem{
			Title:    p.Title,
			Link:     link,
			GUID:     link,
			Category: p.Category,
			PubDate:  p.Date,
			Content:  p.Description,
		}
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(200, buildRSS(h.site.Title, h.site.Description, base, h.now(), items))
}

func buildRSS(title, desc, link string, now time.Time, items []feedItem) string {
	xml := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title><![CDATA[%s]]></title>
    <link>%s</link>
    <description><![CDATA[%s]]></description>
    <lastBuildDate>%s</lastBuildDate>
`, title, escapeXML(link), desc, now.Format(time.RFC1123Z))

	for _, item := range items {
		xml += fmt.Sprintf(`    <item>
      <title><![CDATA[%s]]></title>
      <link>%s</link>
      <guid>%s</guid>
      <category>%s</category>
      <pubDate>%s</pubDate>
      <description><![CDATA[%s]]></description>
    </item>
`, item.Title, escapeXML(item.Link), escapeXML(item.GUID),
			escapeXML(item.Category), item.PubDate.Format(time.RFC1123Z), item.Content)
	}

	xml += `  </channel>
</rss>`
	return xml
}
