package domain

import "gorm.io/gorm"

// WarehouseLocation is imported with upsert-by-code semantics: location
// catalogs are re-imported wholesale, so an existing code is updated
// rather than rejected as a duplicate.
type WarehouseLocation struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Code        string  `gorm:"type:varchar(30);uniqueIndex;not null" json:"code"`
	Zone        string  `gorm:"type:varchar(30);not null" json:"zone"`
	Aisle       string  `gorm:"type:varchar(30);not null" json:"aisle"`
	Rack        string  `gorm:"type:varchar(30);not null" json:"rack"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	gorm.Model
}
