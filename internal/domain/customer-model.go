package domain

import "gorm.io/gorm"

type Customer struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Code         string  `gorm:"type:varchar(30);uniqueIndex;not null" json:"code"` // uppercased before storage
	Name         string  `gorm:"type:varchar(200);not null" json:"name"`
	ContactEmail *string `gorm:"type:varchar(200)" json:"contact_email,omitempty"`
	Phone        *string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	IsActive     bool    `gorm:"not null;default:true" json:"is_active"`
	gorm.Model
}
