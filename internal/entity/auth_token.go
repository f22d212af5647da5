package entity

import "time"

// AuthToken is the API token issued to a user on login. One token per
// user; login returns the existing token if one was already issued.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:64;uniqueIndex;not null" json:"key"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User      `json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
