package model

import "time"

type User struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string `gorm:"not null" json:"name"`
	Email         string `gorm:"unique;not null" json:"email"`
	PasswordHash  string `gorm:"not null" json:"-"`
	ImageURL      string `json:"image"`
	ImageID       string `json:"-"`
	FolderID      string `gorm:"not null" json:"folderId"`
	Role          Role   `gorm:"not null;default:USER" json:"role"`
	EmailVerified bool   `gorm:"not null;default:false" json:"isEmailVerified"`
	Token         string `json:"-"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Reports []Report `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
