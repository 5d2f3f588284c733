package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:120" json:"name"`
	Type        string  `gorm:"size:40" json:"type"` // Dye, Cutting, Blowdry, Hairstyle
	Image       string  `gorm:"size:500" json:"image"`
	Description string  `gorm:"size:500" json:"description"`
	Price       float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
