package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/dto"
	"github.com/stockguard/damage_service/internal/helper"
	"github.com/stockguard/damage_service/internal/repository"
	"github.com/stockguard/damage_service/pkg/batch"
	"gorm.io/gorm"
)

// referenceAttempts bounds the count-then-insert retry loop. Under a
// single-warehouse workload collisions are rare; sustained exhaustion
// is an internal error, not a client mistake.
const referenceAttempts = 3

const reportEntity = "damage_report"

type ReportService interface {
	CreateReport(input dto.CreateReportRequest, actorID uint, clientIP string) (*domain.DamageReport, error)
	GetReport(reportID uint) (*domain.DamageReport, error)
	ListReports(filter dto.ReportListFilter) ([]domain.DamageReport, error)
	GetHistory(reportID uint) ([]domain.StatusHistory, error)

	// ChangeStatus validates the move against the lifecycle table and
	// applies it with its history row atomically. Audit and notification
	// run after the commit and never undo it.
	ChangeStatus(reportID uint, target domain.Status, actorID uint, note *string, clientIP string) (*domain.DamageReport, error)

	Archive(reportID uint, actorID uint, clientIP string) error

	BulkChangeStatus(ids []string, target domain.Status, note *string, actorID uint, clientIP string) batch.Result
	BulkArchive(ids []string, actorID uint, clientIP string) (batch.Result, error)
}

type reportService struct {
	repo         repository.ReportRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	audit        AuditService
	notify       NotificationService
}

func NewReportService(
	repo repository.ReportRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	audit AuditService,
	notify NotificationService,
) ReportService {
	return &reportService{
		repo:         repo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		audit:        audit,
		notify:       notify,
	}
}

func (s *reportService) CreateReport(input dto.CreateReportRequest, actorID uint, clientIP string) (*domain.DamageReport, error) {
	report, err := s.buildReport(input, actorID)
	if err != nil {
		return nil, err
	}

	// count-then-format is not atomic under concurrent creation, so the
	// insert is retried with a fresh count on a uniqueness violation.
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		ref, err := s.nextReferenceNumber(time.Now())
		if err != nil {
			return nil, err
		}
		report.ReferenceNumber = ref

		err = s.repo.Create(report, actorID)
		if err == nil {
			s.audit.Record(actorID, domain.AuditActionCreate, reportEntity, report.ID, &report.ReferenceNumber, clientIP)
			return report, nil
		}
		if !helper.IsDuplicateKey(err) {
			return nil, err
		}
	}

	return nil, errors.New("could not allocate a unique reference number")
}

func (s *reportService) buildReport(input dto.CreateReportRequest, actorID uint) (*domain.DamageReport, error) {
	if input.Quantity <= 0 {
		return nil, helper.Validationf("quantity must be a positive integer")
	}

	description := strings.TrimSpace(input.Description)
	if len(description) < 10 {
		return nil, helper.Validationf("description must be at least 10 characters")
	}

	cause, err := domain.ParseCause(strings.ToUpper(strings.TrimSpace(input.Cause)))
	if err != nil {
		return nil, helper.Validationf("%s", err.Error())
	}
	var causeOther *string
	if cause == domain.CauseOther {
		if input.CauseOther == nil || strings.TrimSpace(*input.CauseOther) == "" {
			return nil, helper.Validationf("cause_other is required when cause is OTHER")
		}
		trimmed := strings.TrimSpace(*input.CauseOther)
		causeOther = &trimmed
	}

	var severity *domain.Severity
	if input.Severity != nil && strings.TrimSpace(*input.Severity) != "" {
		sev, err := domain.ParseSeverity(strings.ToUpper(strings.TrimSpace(*input.Severity)))
		if err != nil {
			return nil, helper.Validationf("%s", err.Error())
		}
		severity = &sev
	}

	var estimatedLoss *decimal.Decimal
	if input.EstimatedLoss != nil && strings.TrimSpace(*input.EstimatedLoss) != "" {
		loss, err := decimal.NewFromString(strings.TrimSpace(*input.EstimatedLoss))
		if err != nil || loss.IsNegative() {
			return nil, helper.Validationf("estimated_loss must be a non-negative number")
		}
		estimatedLoss = &loss
	}

	damagedAt, err := parseDate(input.DamagedAt)
	if err != nil {
		return nil, helper.Validationf("damaged_at: %s", err.Error())
	}

	if _, err := s.customerRepo.FindByID(input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NotFound("customer")
		}
		return nil, err
	}
	product, err := s.productRepo.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NotFound("product")
		}
		return nil, err
	}
	if product.CustomerID != input.CustomerID {
		return nil, helper.Validationf("product does not belong to the given customer")
	}

	return &domain.DamageReport{
		CustomerID:    input.CustomerID,
		ProductID:     input.ProductID,
		Quantity:      input.Quantity,
		Severity:      severity,
		Cause:         cause,
		CauseOther:    causeOther,
		Description:   description,
		Status:        domain.StatusOpen,
		EstimatedLoss: estimatedLoss,
		DamagedAt:     damagedAt,
		ReportedAt:    time.Now(),
		ReporterID:    actorID,
	}, nil
}

// nextReferenceNumber derives DMG-YYYYMMDD-NNNN from the count of
// reports already created today.
func (s *reportService) nextReferenceNumber(now time.Time) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	count, err := s.repo.CountCreatedBetween(dayStart, dayEnd)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DMG-%s-%04d", now.Format("20060102"), count+1), nil
}

func (s *reportService) GetReport(reportID uint) (*domain.DamageReport, error) {
	report, err := s.repo.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NotFound("report")
		}
		return nil, err
	}
	return report, nil
}

func (s *reportService) ListReports(filter dto.ReportListFilter) ([]domain.DamageReport, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.List(filter)
}

func (s *reportService) GetHistory(reportID uint) ([]domain.StatusHistory, error) {
	if _, err := s.GetReport(reportID); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(reportID)
}

func (s *reportService) ChangeStatus(reportID uint, target domain.Status, actorID uint, note *string, clientIP string) (*domain.DamageReport, error) {
	report, err := s.GetReport(reportID)
	if err != nil {
		return nil, err
	}

	if !report.Status.CanTransitionTo(target) {
		return nil, &helper.InvalidTransitionError{From: report.Status, To: target}
	}

	var resolvedAt *time.Time
	if target == domain.StatusClosed {
		now := time.Now()
		resolvedAt = &now
	}

	err = s.repo.UpdateStatus(reportID, report.Status, target, actorID, note, resolvedAt)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// lost the race: somebody moved the report first, re-check
			// against its fresh status
			fresh, ferr := s.GetReport(reportID)
			if ferr != nil {
				return nil, ferr
			}
			return nil, &helper.InvalidTransitionError{From: fresh.Status, To: target}
		}
		return nil, err
	}

	updated, err := s.GetReport(reportID)
	if err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("%s -> %s", report.Status, target)
	s.audit.Record(actorID, domain.AuditActionStatusChange, reportEntity, reportID, &detail, clientIP)
	s.notify.NotifyStatusChange(updated, actorID)

	return updated, nil
}

// archiveEligibility returns nil when the report may be archived. The
// error messages double as user-facing skip reasons.
func (s *reportService) archiveEligibility(reportID uint) error {
	report, err := s.GetReport(reportID)
	if err != nil {
		return err
	}
	if report.Status != domain.StatusClosed {
		return &helper.ConflictError{Message: "Report is not closed"}
	}
	if report.IsArchived {
		return &helper.ConflictError{Message: "Already archived"}
	}
	return nil
}

func (s *reportService) Archive(reportID uint, actorID uint, clientIP string) error {
	if err := s.archiveEligibility(reportID); err != nil {
		return err
	}
	if err := s.repo.ArchiveAll([]uint{reportID}); err != nil {
		return err
	}
	s.audit.Record(actorID, domain.AuditActionArchive, reportEntity, reportID, nil, clientIP)
	return nil
}

func (s *reportService) BulkChangeStatus(ids []string, target domain.Status, note *string, actorID uint, clientIP string) batch.Result {
	return batch.Run(ids, func(id string) string { return id }, func(id string) error {
		reportID, err := parseID(id)
		if err != nil {
			return err
		}
		_, err = s.ChangeStatus(reportID, target, actorID, note, clientIP)
		return err
	})
}

func (s *reportService) BulkArchive(ids []string, actorID uint, clientIP string) (batch.Result, error) {
	// eligibility is checked per item, the write happens once for the
	// whole eligible set; an id repeated in the same request must not
	// count twice or audit twice
	eligible := make([]uint, 0, len(ids))
	accepted := make(map[uint]bool, len(ids))
	res := batch.Run(ids, func(id string) string { return id }, func(id string) error {
		reportID, err := parseID(id)
		if err != nil {
			return err
		}
		if accepted[reportID] {
			return &helper.ConflictError{Message: "Already archived"}
		}
		if err := s.archiveEligibility(reportID); err != nil {
			return err
		}
		accepted[reportID] = true
		eligible = append(eligible, reportID)
		return nil
	})

	if err := s.repo.ArchiveAll(eligible); err != nil {
		return batch.Result{}, err
	}
	for _, reportID := range eligible {
		s.audit.Record(actorID, domain.AuditActionArchive, reportEntity, reportID, nil, clientIP)
	}
	return res, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("Invalid id")
	}
	return uint(id), nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("date is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("expected RFC3339 or YYYY-MM-DD")
}
