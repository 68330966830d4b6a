package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/interfaces"
)

// NotificationService publishes status-change events for downstream
// mail/alerting consumers. Delivery is fire-and-forget: failures are
// logged and swallowed, never retried here.
type NotificationService interface {
	NotifyStatusChange(report *domain.DamageReport, actorID uint)
}

type statusChangeEvent struct {
	ReportID        uint   `json:"report_id"`
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
	ActorID         uint   `json:"actor_id"`
	ReporterID      uint   `json:"reporter_id"`
	CustomerID      *uint  `json:"customer_id,omitempty"`
	OccurredAt      string `json:"occurred_at"`
}

type notificationService struct {
	producer interfaces.ProducerHandler
}

func NewNotificationService(producer interfaces.ProducerHandler) NotificationService {
	return &notificationService{producer: producer}
}

func (n *notificationService) NotifyStatusChange(report *domain.DamageReport, actorID uint) {
	if n.producer == nil || report == nil {
		return
	}

	event := statusChangeEvent{
		ReportID:        report.ID,
		ReferenceNumber: report.ReferenceNumber,
		Status:          string(report.Status),
		ActorID:         actorID,
		ReporterID:      report.ReporterID,
		OccurredAt:      time.Now().Format(time.RFC3339),
	}
	// the customer is a recipient only when we just told them
	if report.Status == domain.StatusCustomerNotified {
		customerID := report.CustomerID
		event.CustomerID = &customerID
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("notify marshal failed for report %d: %v", report.ID, err)
		return
	}

	if err := n.producer.PublishMessage([]byte("report.status_changed"), payload); err != nil {
		log.Printf("notify publish failed for report %d: %v", report.ID, err)
	}
}
