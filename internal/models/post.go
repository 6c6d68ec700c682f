package models

import "time"

// Post represents a published post owned by exactly one author.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:100"`
	Content   string    `json:"content" gorm:"type:text"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	MediaURL  string    `json:"media,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" form:"title" validate:"required,min=3,max=100"`
	Content string `json:"content" form:"content" validate:"required"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title   string `json:"title" form:"title" validate:"omitempty,min=3,max=100"`
	Content string `json:"content" form:"content" validate:"omitempty"`
}
