package models

import "time"

// Review belongs to exactly one campground via CampgroundID; deleting the
// row detaches and destroys it in a single step.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Rating       int       `gorm:"not null" json:"rating"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	AuthorID     uint      `gorm:"not null;index" json:"author_id"`
	Author       User      `gorm:"foreignKey:AuthorID" json:"author"`
	CampgroundID uint      `gorm:"not null;index" json:"campground_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
