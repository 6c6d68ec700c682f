package models

import "time"

// Notification target kinds. The target reference is a closed tagged
// union over these; resolution is a typed dispatch at read time.
const (
	TargetPost    = "post"
	TargetUser    = "user"
	TargetComment = "comment"
)

// Notification is an append-only social event aimed at a recipient.
// Immutable after creation except for IsRead.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Verb        string    `json:"verb" gorm:"size:100"`
	TargetType  string    `json:"target_type" gorm:"size:20"`
	TargetID    uint      `json:"target_id"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// ResolvedTarget is the serialized form of the notification target,
// nil when the referenced entity has since been deleted.
type ResolvedTarget struct {
	ID    uint   `json:"id"`
	Model string `json:"model"`
	Data  string `json:"data"`
}

// EnrichedNotification includes the actor and the resolved target.
type EnrichedNotification struct {
	Notification
	Actor  UserCompact     `json:"actor"`
	Target *ResolvedTarget `json:"target"`
}
