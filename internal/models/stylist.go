package models

import "time"

type Stylist struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:120" json:"name"`
	Image       string `gorm:"size:500" json:"image"`
	Description string `gorm:"size:500" json:"description"`
	Specialties string `gorm:"size:255" json:"specialties"` // comma separated: "Dye,Cutting"

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
