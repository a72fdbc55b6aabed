package models

import "time"

type BlogPost struct {
	Record
	Title         string     `json:"title" gorm:"not null"`
	Slug          string     `json:"slug" gorm:"uniqueIndex;size:191;not null"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content" gorm:"type:text"`
	CoverImageURL string     `json:"cover_image_url"`
	Published     bool       `json:"published" gorm:"index"`
	PublishedAt   *time.Time `json:"published_at"`
}

func (BlogPost) TableName() string { return "blogpost" }

type GalleryImage struct {
	Record
	Title    string `json:"title"`
	ImageURL string `json:"image_url" gorm:"not null"`
	Category string `json:"category"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active" gorm:"index"`
}

func (GalleryImage) TableName() string { return "galleryimage" }

// Subscriber is a newsletter signup
type Subscriber struct {
	Record
	Email  string `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (Subscriber) TableName() string { return "subscriber" }

// SiteSetting holds a free-form value: an object, string, number or bool.
type SiteSetting struct {
	Record
	Key         string `json:"key" gorm:"uniqueIndex;size:191;not null"`
	Value       any    `json:"value" gorm:"serializer:json;type:text"`
	Description string `json:"description"`
}

func (SiteSetting) TableName() string { return "sitesetting" }
