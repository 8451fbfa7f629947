package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Campground is a listed campsite owned by its author. AuthorID is set once
// at creation and never updated; the review and image rows below are owned
// exclusively by this record and are removed with it.
type Campground struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Title       string            `gorm:"not null" json:"title"`
	Description string            `gorm:"type:text;not null" json:"description"`
	Price       float64           `gorm:"not null" json:"price"`
	Location    string            `gorm:"not null" json:"location"`
	AuthorID    uint              `gorm:"not null;index" json:"author_id"`
	Author      User              `gorm:"foreignKey:AuthorID" json:"author"`
	Images      []CampgroundImage `gorm:"foreignKey:CampgroundID" json:"images"`
	Reviews     []Review          `gorm:"foreignKey:CampgroundID" json:"reviews,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CampgroundImage is one uploaded image in a campground's ordered gallery.
// Filename is the opaque object-store key used for external deletion.
type CampgroundImage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CampgroundID uint   `gorm:"not null;index" json:"-"`
	URL          string `gorm:"not null" json:"url"`
	Filename     string `gorm:"not null" json:"filename"`
	Position     int    `gorm:"not null;default:0" json:"position"`
}

// Thumbnail derives the resized-image URL by rewriting the first "/upload"
// path segment. It is computed, never stored.
func (img CampgroundImage) Thumbnail() string {
	return strings.Replace(img.URL, "/upload", "/upload/w_200", 1)
}

// MarshalJSON includes the derived thumbnail URL alongside the stored fields.
func (img CampgroundImage) MarshalJSON() ([]byte, error) {
	type plain CampgroundImage
	return json.Marshal(struct {
		plain
		Thumbnail string `json:"thumbnail"`
	}{plain(img), img.Thumbnail()})
}
