package services

import (
	"log"

	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/repository"
)

type AuditService interface {
	// Record is best-effort: a failed audit write is logged and must
	// never roll back the mutation it describes.
	Record(actorID uint, action, entity string, entityID uint, detail *string, clientIP string)
	List(limit, offset int) ([]domain.AuditLog, error)
	ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (a *auditService) Record(actorID uint, action, entity string, entityID uint, detail *string, clientIP string) {
	entry := &domain.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
		ClientIP: clientIP,
	}
	if err := a.repo.Create(entry); err != nil {
		log.Printf("audit write failed (action=%s entity=%s id=%d): %v", action, entity, entityID, err)
	}
}

func (a *auditService) List(limit, offset int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return a.repo.List(limit, offset)
}

func (a *auditService) ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error) {
	return a.repo.ListByEntity(entity, entityID)
}
