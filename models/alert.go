package models

import "time"

type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   *uint     `gorm:"index" json:"ownerId,omitempty"`
	ReadingID uint      `gorm:"index" json:"readingId"`
	Level     string    `gorm:"size:20" json:"level"` // "low" | "urgent_low" | "high"
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
