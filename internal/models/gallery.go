package models

import "time"

// GalleryImage is an embedded image reference stored as JSON on the row.
type GalleryImage struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// GalleryModel is a gallery post row.
type GalleryModel struct {
	Base
	Title         string         `json:"title"          gorm:"not null"`
	Description   string         `json:"description"    gorm:"type:text"`
	Slug          string         `json:"slug"           gorm:"uniqueIndex;not null"`
	Model         string         `json:"model"          gorm:"index;not null"`
	Category      string         `json:"category"       gorm:"index"`
	Cover         string         `json:"cover"`
	Images        []GalleryImage `json:"images"         gorm:"type:longtext;serializer:json"`
	Tags          StringArray    `json:"tags"           gorm:"type:json"`
	PublishedAt   time.Time      `json:"published_at"   gorm:"index"`
	ViewCount     int            `json:"view_count"     gorm:"default:0"`
	AverageRating float64        `json:"average_rating" gorm:"type:decimal(3,2);default:0"`
	RatingCount   int            `json:"rating_count"   gorm:"default:0"`
}

func (GalleryModel) TableName() string { return "galleries" }

// ViewModel records a single gallery view, anonymous views included.
type ViewModel struct {
	Base
	GalleryID string  `json:"gallery_id" gorm:"index;not null"`
	UserID    *string `json:"user_id"    gorm:"index"`
	IPAddress string  `json:"ip_address"`
	UserAgent string  `json:"user_agent" gorm:"type:text"`
}

func (ViewModel) TableName() string { return "views" }

// RatingModel is a 1-5 star rating left on a gallery.
type RatingModel struct {
	Base
	GalleryID string `json:"gallery_id" gorm:"uniqueIndex:idx_rating_user_gallery;not null"`
	UserID    string `json:"user_id"    gorm:"uniqueIndex:idx_rating_user_gallery;not null"`
	Rating    int    `json:"rating"     gorm:"not null"`
}

func (RatingModel) TableName() string { return "ratings" }
