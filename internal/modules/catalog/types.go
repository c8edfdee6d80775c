package catalog

import "time"

// GalleryImage is a single image of a gallery post. Immutable once created.
type GalleryImage struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// GalleryPost is the canonical gallery record, regardless of which source it
// was loaded from. Slug is globally unique within a snapshot, in the form
// "<model>/<gallery-name>".
type GalleryPost struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"`
	Model       string         `json:"model"`
	Category    string         `json:"category"`
	Cover       string         `json:"cover"`
	Images      []GalleryImage `json:"images"`
	Tags        []string       `json:"tags"`
}

// Model is a roster entry derived from the posts of one model. The aggregate
// fields are recomputed on every snapshot rebuild, never maintained
// incrementally.
type Model struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Avatar       string `json:"avatar"`
	Bio          string `json:"bio"`
	GalleryCount int    `json:"galleryCount"`
	TotalLikes   int    `json:"totalLikes"`
	JoinDate     string `json:"joinDate"`
}
