package model

import "time"

// CountryCode maps a barcode prefix range to the country it belongs to.
type CountryCode struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	FirstCode string `gorm:"not null" json:"firstCode"`
	LastCode  string `gorm:"not null" json:"lastCode"`
	AdminID   uint   `gorm:"not null;index" json:"adminId"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
