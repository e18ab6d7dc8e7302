package models

import "time"

// A push-notification endpoint registered by a user's phone.
type UserDevice struct {
	ID          uint      `gorm:"primaryKey"`
	OwnerID     uint      `gorm:"index"`
	Platform    string    `gorm:"size:16"` // "android" | "ios"
	TokenHash   string    `gorm:"size:64"`
	EndpointARN string    `gorm:"size:256"`
	Enabled     bool      `gorm:"default:true"`
	UpdatedAt   time.Time
	CreatedAt   time.Time
}
