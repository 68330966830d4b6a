package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/repository"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "damage.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Customer{},
		&domain.Product{},
		&domain.WarehouseLocation{},
		&domain.DamageReport{},
		&domain.StatusHistory{},
		&domain.AuditLog{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

type noopProducer struct{}

func (noopProducer) PublishMessage(key, value []byte) error { return nil }

func newReportService(t *testing.T, db *gorm.DB) ReportService {
	t.Helper()

	audit := NewAuditService(repository.NewAuditRepository(db))
	notify := NewNotificationService(noopProducer{})
	return NewReportService(
		repository.NewReportRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		audit,
		notify,
	)
}

func newImportService(t *testing.T, db *gorm.DB) ImportService {
	t.Helper()

	audit := NewAuditService(repository.NewAuditRepository(db))
	return NewImportService(
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		repository.NewLocationRepository(db),
		audit,
	)
}

func seedCustomerAndProduct(t *testing.T, db *gorm.DB) (*domain.Customer, *domain.Product) {
	t.Helper()

	customer := &domain.Customer{Code: "ACME", Name: "Acme Corp", IsActive: true}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	product := &domain.Product{CustomerID: customer.ID, SKU: "WID-1", Name: "Widget"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return customer, product
}

var reportSeq int

// seedReport plants a report directly at the given status, bypassing
// the service, so transition tests can start anywhere in the lifecycle.
func seedReport(t *testing.T, db *gorm.DB, customer *domain.Customer, product *domain.Product, status domain.Status) *domain.DamageReport {
	t.Helper()

	reportSeq++
	report := &domain.DamageReport{
		ReferenceNumber: fmt.Sprintf("DMG-19990101-%04d", reportSeq),
		CustomerID:      customer.ID,
		ProductID:       product.ID,
		Quantity:        5,
		Cause:           domain.CauseHandling,
		Description:     "ten boxes crushed by forklift",
		Status:          status,
		DamagedAt:       time.Now().AddDate(0, 0, -1),
		ReportedAt:      time.Now(),
		ReporterID:      1,
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("seed report: %v", err)
	}
	return report
}

func countHistory(t *testing.T, db *gorm.DB, reportID uint) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&domain.StatusHistory{}).Where("report_id = ?", reportID).Count(&n).Error; err != nil {
		t.Fatalf("count history: %v", err)
	}
	return n
}
