package models

import "time"

// Technician is a field technician available for assignment. Deleting a
// technician clears the denormalized snapshot on bookings instead of
// cascading into them.
type Technician struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Phone     string    `json:"phone" gorm:"size:30;not null"`
	Email     string    `json:"email" gorm:"size:200"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Technician) TableName() string {
	return "technicians"
}
