package model

import "time"

type CompanyCode struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string `gorm:"not null" json:"name"`
	BarcodeNumber int    `gorm:"not null" json:"barcodeNumber"`
	AdminID       uint   `gorm:"not null;index" json:"adminId"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
