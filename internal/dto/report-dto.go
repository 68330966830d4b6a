package dto

type CreateReportRequest struct {
	CustomerID    uint    `json:"customer_id" validate:"required"`
	ProductID     uint    `json:"product_id" validate:"required"`
	Quantity      int     `json:"quantity" validate:"required,gt=0"`
	Severity      *string `json:"severity,omitempty"`
	Cause         string  `json:"cause" validate:"required"`
	CauseOther    *string `json:"cause_other,omitempty"`
	Description   string  `json:"description" validate:"required,min=10"`
	EstimatedLoss *string `json:"estimated_loss,omitempty"`
	DamagedAt     string  `json:"damaged_at" validate:"required"` // RFC3339 or 2006-01-02
}

type ChangeStatusRequest struct {
	Status string  `json:"status" validate:"required" example:"CUSTOMER_NOTIFIED"`
	Note   *string `json:"note,omitempty"`
}

type ReportListFilter struct {
	Status   *string
	Archived *bool
	Limit    int
	Offset   int
}
