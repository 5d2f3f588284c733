package models

import "time"

type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex:idx_rating_user_target" json:"user_id"`

	// TargetID plus TargetType identify what is being rated: a service
	// (type matches the service type) or a stylist (type "Stylist").
	TargetID   uint   `gorm:"uniqueIndex:idx_rating_user_target" json:"target_id"`
	TargetType string `gorm:"size:20;uniqueIndex:idx_rating_user_target" json:"target_type"`

	Stars    int    `json:"stars"`
	Feedback string `gorm:"size:500" json:"feedback"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
