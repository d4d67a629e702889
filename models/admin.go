package models

import "time"

// Admin is a back-office user credential record.
type Admin struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:200;not null"`
	Email        string    `json:"email" gorm:"size:200;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"`
	Role         string    `json:"role" gorm:"size:30;default:'admin'"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Admin) TableName() string {
	return "admins"
}
