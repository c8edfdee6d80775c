package catalog

import "github.com/shinydollop/core/internal/models"

// SourceRecord is the tagged union of the three source shapes the Normalizer
// accepts. Exactly one field is set; each tag has its own canonicalization
// function, so no consumer ever branches on ad hoc field presence.
type SourceRecord struct {
	Static   *StaticRecord
	Markdown *MarkdownRecord
	Row      *models.GalleryModel
}

// StaticRecord mirrors one post of the bundled JSON dataset. Dates stay
// strings here; the Normalizer owns timestamp parsing.
type StaticRecord struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Tags        []string       `json:"tags"`
	Model       string         `json:"model"`
	Category    string         `json:"category"`
	Cover       string         `json:"cover"`
	Images      []GalleryImage `json:"images"`
}

// MarkdownRecord is one raw markdown document plus the directory context its
// slug derives from: data/<ModelDir>/<Name>.md or data/<ModelDir>/<Name>/index.md.
type MarkdownRecord struct {
	ModelDir string
	Name     string
	Content  []byte
}
