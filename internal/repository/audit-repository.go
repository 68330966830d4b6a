package repository

import (
	"errors"

	"github.com/stockguard/damage_service/internal/domain"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *domain.AuditLog) error
	List(limit, offset int) ([]domain.AuditLog, error)
	ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(entry *domain.AuditLog) error {
	if entry == nil {
		return errors.New("nil audit entry")
	}
	return r.db.Create(entry).Error
}

func (r *auditRepository) List(limit, offset int) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *auditRepository) ListByEntity(entity string, entityID uint) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog
	err := r.db.Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
