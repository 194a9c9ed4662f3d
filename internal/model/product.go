package model

import "time"

type Product struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string `gorm:"not null" json:"name"`
	Category        string `gorm:"not null" json:"category"`
	Image           string `gorm:"not null" json:"image"`
	Country         string `gorm:"not null" json:"country"`
	Boycott         bool   `gorm:"not null;default:false" json:"boycott"`
	ReasonOfBoycott string `json:"reasonOfBoycott"`
	Rate            int    `gorm:"not null" json:"rate"`
	AdminID         uint   `gorm:"not null;index" json:"adminId"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Reports []Report `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
