package model

import "time"

type Admin struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string `gorm:"not null" json:"name"`
	Email         string `gorm:"unique;not null" json:"email"`
	PasswordHash  string `gorm:"not null" json:"-"`
	ImageURL      string `json:"image"`
	ImageID       string `json:"-"`
	FolderID      string `gorm:"not null" json:"folderId"`
	Role          Role   `gorm:"not null;default:ADMIN" json:"role"`
	EmailVerified bool   `gorm:"not null;default:false" json:"isEmailVerified"`
	Token         string `json:"-"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Products     []Product     `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Denotions    []Denotion    `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CountryCodes []CountryCode `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CompanyCodes []CompanyCode `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
