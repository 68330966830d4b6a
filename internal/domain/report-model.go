package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusOpen             Status = "OPEN"
	StatusCustomerNotified Status = "CUSTOMER_NOTIFIED"
	StatusDestroyStock     Status = "DESTROY_STOCK"
	StatusRepCollect       Status = "REP_COLLECT"
	StatusClosed           Status = "CLOSED"
)

// StatusTransitions is the full lifecycle. CLOSED is terminal and there
// are no self-loops; anything not listed here is rejected.
var StatusTransitions = map[Status][]Status{
	StatusOpen:             {StatusCustomerNotified},
	StatusCustomerNotified: {StatusDestroyStock, StatusRepCollect},
	StatusDestroyStock:     {StatusClosed},
	StatusRepCollect:       {StatusClosed},
	StatusClosed:           {},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range StatusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := StatusTransitions[s]; !ok {
		return "", errors.New("unknown status: " + raw)
	}
	return s, nil
}

type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

func ParseSeverity(raw string) (Severity, error) {
	switch s := Severity(raw); s {
	case SeverityMinor, SeverityModerate, SeveritySevere:
		return s, nil
	}
	return "", errors.New("unknown severity: " + raw)
}

type Cause string

const (
	CauseTransport Cause = "TRANSPORT"
	CauseHandling  Cause = "HANDLING"
	CauseStorage   Cause = "STORAGE"
	CausePackaging Cause = "PACKAGING"
	CauseOther     Cause = "OTHER"
)

func ParseCause(raw string) (Cause, error) {
	switch c := Cause(raw); c {
	case CauseTransport, CauseHandling, CauseStorage, CausePackaging, CauseOther:
		return c, nil
	}
	return "", errors.New("unknown cause: " + raw)
}

type DamageReport struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	ReferenceNumber string           `gorm:"type:varchar(20);uniqueIndex;not null" json:"reference_number"`
	CustomerID      uint             `gorm:"not null;index" json:"customer_id"`
	ProductID       uint             `gorm:"not null;index" json:"product_id"`
	Quantity        int              `gorm:"not null" json:"quantity"`
	Severity        *Severity        `gorm:"type:varchar(20)" json:"severity,omitempty"`
	Cause           Cause            `gorm:"type:varchar(20);not null" json:"cause"`
	CauseOther      *string          `gorm:"type:text" json:"cause_other,omitempty"`
	Description     string           `gorm:"type:text;not null" json:"description"`
	Status          Status           `gorm:"type:varchar(20);not null;default:OPEN;index" json:"status"`
	EstimatedLoss   *decimal.Decimal `gorm:"type:numeric(12,2)" json:"estimated_loss,omitempty"`
	DamagedAt       time.Time        `gorm:"not null" json:"damaged_at"`
	ReportedAt      time.Time        `gorm:"not null" json:"reported_at"`
	ResolvedAt      *time.Time       `json:"resolved_at,omitempty"`
	IsArchived      bool             `gorm:"not null;default:false;index" json:"is_archived"`
	ReporterID      uint             `gorm:"not null;index" json:"reporter_id"`
	ReviewerID      *uint            `json:"reviewer_id,omitempty"`
	gorm.Model
}
