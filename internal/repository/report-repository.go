package repository

import (
	"time"

	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/dto"
	"gorm.io/gorm"
)

type ReportRepository interface {
	// Create persists the report together with its creation history row
	// (from_status is nil) in one transaction.
	Create(report *domain.DamageReport, actorID uint) error
	FindByID(reportID uint) (*domain.DamageReport, error)
	List(filter dto.ReportListFilter) ([]domain.DamageReport, error)
	CountCreatedBetween(from, to time.Time) (int64, error)

	// UpdateStatus moves the report from `from` to `to` and appends the
	// history row in the same transaction. The update is conditional on
	// the current status; gorm.ErrRecordNotFound is returned when a
	// concurrent writer got there first.
	UpdateStatus(reportID uint, from, to domain.Status, actorID uint, note *string, resolvedAt *time.Time) error

	ListHistory(reportID uint) ([]domain.StatusHistory, error)

	// ArchiveAll flips is_archived for the given ids in one batched
	// update. Eligibility is the caller's job.
	ArchiveAll(reportIDs []uint) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *domain.DamageReport, actorID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}

		history := &domain.StatusHistory{
			ReportID:   report.ID,
			FromStatus: nil,
			ToStatus:   report.Status,
			ActorID:    actorID,
		}
		return tx.Create(history).Error
	})
}

func (r *reportRepository) FindByID(reportID uint) (*domain.DamageReport, error) {
	report := &domain.DamageReport{}
	if err := r.db.First(report, reportID).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reportRepository) List(filter dto.ReportListFilter) ([]domain.DamageReport, error) {
	q := r.db.Model(&domain.DamageReport{})

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Archived != nil {
		q = q.Where("is_archived = ?", *filter.Archived)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var reports []domain.DamageReport
	if err := q.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) CountCreatedBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.DamageReport{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) UpdateStatus(reportID uint, from, to domain.Status, actorID uint, note *string, resolvedAt *time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status": to,
		}
		if resolvedAt != nil {
			updates["resolved_at"] = *resolvedAt
			updates["reviewer_id"] = actorID
		}

		res := tx.Model(&domain.DamageReport{}).
			Where("id = ? AND status = ?", reportID, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		fromCopy := from
		history := &domain.StatusHistory{
			ReportID:   reportID,
			FromStatus: &fromCopy,
			ToStatus:   to,
			ActorID:    actorID,
			Note:       note,
		}
		return tx.Create(history).Error
	})
}

func (r *reportRepository) ListHistory(reportID uint) ([]domain.StatusHistory, error) {
	var history []domain.StatusHistory
	err := r.db.Where("report_id = ?", reportID).
		Order("created_at ASC, id ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (r *reportRepository) ArchiveAll(reportIDs []uint) error {
	if len(reportIDs) == 0 {
		return nil
	}
	return r.db.Model(&domain.DamageReport{}).
		Where("id IN ?", reportIDs).
		Update("is_archived", true).Error
}
