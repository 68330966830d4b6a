package dto

type CreateCustomerRequest struct {
	Code         string  `json:"code" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

type CreateProductRequest struct {
	CustomerID uint    `json:"customer_id" validate:"required"`
	SKU        string  `json:"sku" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	UnitValue  *string `json:"unit_value,omitempty"`
}
