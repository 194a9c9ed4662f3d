package model

import "time"

// Report keeps a snapshot of the reporter's name and email so the row stays
// meaningful even after the user changes their profile.
type Report struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Message   string `gorm:"not null" json:"message"`
	ProductID uint   `gorm:"not null;index" json:"productId"`
	UserID    uint   `gorm:"not null;index" json:"userId"`
	UserEmail string `gorm:"not null" json:"emailUser"`
	Username  string `gorm:"not null" json:"username"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
