package model

import "time"

// Denotion is a donation link curated by an admin.
type Denotion struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Image     string `gorm:"not null" json:"image"`
	Link      string `gorm:"not null" json:"link"`
	AdminID   uint   `gorm:"not null;index" json:"adminId"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
