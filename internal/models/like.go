package models

import "time"

// Like represents a like on a post. The composite unique index is the
// authoritative uniqueness guarantee; concurrent duplicate inserts
// resolve to one winner at the database.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_like"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_like"`
	CreatedAt time.Time `json:"created_at"`
}
