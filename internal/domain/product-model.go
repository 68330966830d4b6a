package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"not null;uniqueIndex:uidx_products_customer_sku" json:"customer_id"`
	// SKU is unique per customer, not globally.
	SKU       string           `gorm:"type:varchar(60);not null;uniqueIndex:uidx_products_customer_sku" json:"sku"`
	Name      string           `gorm:"type:varchar(200);not null" json:"name"`
	UnitValue *decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_value,omitempty"`
	gorm.Model
}
