package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Username          string    `json:"username" gorm:"size:150;uniqueIndex"`
	Email             string    `json:"email" gorm:"uniqueIndex"`
	Bio               string    `json:"bio" gorm:"size:250"`
	ProfilePictureURL string    `json:"profile_picture,omitempty"`
	Password          string    `json:"-"` // bcrypt hash, never serialized
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserCompact is the embedded author/actor representation used in
// feed posts and enriched notifications.
type UserCompact struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture,omitempty"`
}

// UserProfile is the public profile view with follow counts.
type UserProfile struct {
	UserCompact
	Bio            string `json:"bio,omitempty"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:                u.ID,
		Username:          u.Username,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=2,max=150"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	Bio      string `json:"bio" form:"bio" validate:"omitempty,max=250"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" form:"username" validate:"omitempty,min=2,max=150"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Bio      string `json:"bio" form:"bio" validate:"omitempty,max=250"`
	Password string `json:"password" form:"password" validate:"omitempty,min=8"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}
