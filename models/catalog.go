package models

import "time"

// Brand is a device manufacturer entry in the repair catalog.
type Brand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Logo      string    `json:"logo" gorm:"size:700"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Brand) TableName() string {
	return "brands"
}

// DeviceModel is a device model belonging to a brand.
type DeviceModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	BrandID   uint      `json:"brandId" gorm:"not null;index"`
	Brand     Brand     `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Image     string    `json:"image" gorm:"size:700"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (DeviceModel) TableName() string {
	return "device_models"
}
