package model

import "time"

// Video is one movie-quote clip record. The id is a uuid4 hex string
// assigned on create; optional columns stay NULL so that partial updates
// can clear them.
type Video struct {
	Id    string `json:"id" form:"id" gorm:"primaryKey;size:50"`
	Url   string `json:"url" form:"url" gorm:"size:500;not null"`
	Name  string `json:"name" form:"name" gorm:"size:255;not null"`
	Title string `json:"title" form:"title" gorm:"size:255;not null"`

	Image  *string `json:"image" form:"image" gorm:"size:500"`
	Video  *string `json:"video" form:"video" gorm:"column:video;size:500"`
	User   *string `json:"user" form:"user" gorm:"column:user;size:255"`
	Poster *string `json:"poster" form:"poster" gorm:"size:500"`
	Script *string `json:"script" form:"script" gorm:"size:2000"`

	Views int `json:"views" form:"views" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// SortField is a whitelisted list ordering for video queries.
type SortField string

const (
	SortByViews     SortField = "views"
	SortByTitle     SortField = "title"
	SortByCreatedAt SortField = "created_at"
)

// Valid reports whether f is one of the accepted sort fields.
func (f SortField) Valid() bool {
	switch f {
	case SortByViews, SortByTitle, SortByCreatedAt:
		return true
	}
	return false
}
