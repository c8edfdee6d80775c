package gallery

import (
	"strconv"
	"time"

	"github.com/shinydollop/core/internal/modules/analytics"
	"github.com/shinydollop/core/internal/modules/catalog"
)

// Gallery is the wire representation of a gallery post, matching the shape
// the frontend consumes. ID equals the slug for file-backed sources.
type Gallery struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Slug          string                 `json:"slug"`
	Model         string                 `json:"model"`
	Category      string                 `json:"category"`
	Cover         string                 `json:"cover"`
	Images        []catalog.GalleryImage `json:"images"`
	Tags          []string               `json:"tags"`
	PublishedAt   time.Time              `json:"publishedAt"`
	ViewCount     int                    `json:"viewCount"`
	AverageRating string                 `json:"averageRating"`
	RatingCount   int                    `json:"ratingCount"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ListResponse is the paginated envelope for gallery listings.
type ListResponse struct {
	Galleries  []Gallery `json:"galleries"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// TrendingResponse wraps the trending listing.
type TrendingResponse struct {
	Galleries []Gallery `json:"galleries"`
}

func fromPost(p catalog.GalleryPost, st analytics.Stats) Gallery {
	images := p.Images
	if images == nil {
		images = []catalog.GalleryImage{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Gallery{
		ID:            p.Slug,
		Title:         p.Title,
		Description:   p.Description,
		Slug:          p.Slug,
		Model:         p.Model,
		Category:      p.Category,
		Cover:         p.Cover,
		Images:        images,
		Tags:          tags,
		PublishedAt:   p.Date,
		ViewCount:     st.Views,
		AverageRating: strconv.FormatFloat(st.Rating, 'f', 2, 64),
		RatingCount:   st.Ratings,
		CreatedAt:     p.Date,
		UpdatedAt:     p.Date,
	}
}
