package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:120" json:"name"`
	Email        string `gorm:"size:160;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:120" json:"-"`

	Role string `gorm:"size:20;default:'customer'" json:"role"`

	// Expo push token registered by the mobile client; empty when the
	// customer never granted notification permission.
	ExpoPushToken string `gorm:"size:120" json:"expo_push_token,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
