package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/helper"
	"github.com/stockguard/damage_service/internal/repository"
	"github.com/stockguard/damage_service/pkg/batch"
	"github.com/stockguard/damage_service/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ImportService parses an uploaded CSV and creates one record per row.
// Rows are fully independent: each one validates, commits or fails on
// its own, and a bad row never touches its neighbours.
type ImportService interface {
	ImportCustomers(r io.Reader, actorID uint, clientIP string) (batch.ImportResult, error)
	ImportProducts(r io.Reader, actorID uint, clientIP string) (batch.ImportResult, error)
	ImportUsers(r io.Reader, actorID uint, clientIP string) (batch.ImportResult, error)
	ImportLocations(r io.Reader, actorID uint, clientIP string) (batch.ImportResult, error)
}

type importService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
	audit        AuditService
}

func NewImportService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	audit AuditService,
) ImportService {
	return &importService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		locationRepo: locationRepo,
		audit:        audit,
	}
}

// parseCSV reads the whole file up front so that a malformed file is
// rejected before any row is attempted. Header names are matched
// case-insensitively; ragged rows are tolerated (missing cells read as
// empty strings).
func parseCSV(r io.Reader, required ...string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, helper.Validationf("could not parse csv file: %s", err.Error())
	}
	if len(records) < 1 {
		return nil, helper.Validationf("csv file is empty")
	}

	header := make([]string, len(records[0]))
	seen := map[string]bool{}
	for i, h := range records[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		header[i] = name
		seen[name] = true
	}
	for _, col := range required {
		if !seen[col] {
			return nil, helper.Validationf("missing required column %q", col)
		}
	}
	if len(records) < 2 {
		return nil, helper.Validationf("csv file has no data rows")
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := map[string]string{}
		for i, name := range header {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *importService) ImportCustomers(r io.Reader, actorID uint, clientIP string) (batch.ImportResult, error) {
	rows, err := parseCSV(r, "code", "name")
	if err != nil {
		return batch.ImportResult{}, err
	}
	batchID := uuid.NewString()

	return batch.RunRows(rows, func(row map[string]string) error {
		code := utils.NormalizeCode(row["code"])
		if code == "" {
			return errors.New("code is required")
		}
		name := row["name"]
		if name == "" {
			return errors.New("name is required")
		}

		var contactEmail *string
		if e := utils.NormalizeEmail(row["contact_email"]); e != "" {
			if err := utils.ValidEmail(e); err != nil {
				return fmt.Errorf("contact_email: %s", err.Error())
			}
			contactEmail = &e
		}
		var phone *string
		if p := row["phone"]; p != "" {
			phone = &p
		}

		if _, err := s.customerRepo.FindByCode(code); err == nil {
			return fmt.Errorf("customer code %q already exists", code)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		customer := &domain.Customer{
			Code:         code,
			Name:         name,
			ContactEmail: contactEmail,
			Phone:        phone,
			IsActive:     true,
		}
		if err := s.customerRepo.Create(customer); err != nil {
			if helper.IsDuplicateKey(err) {
				return fmt.Errorf("customer code %q already exists", code)
			}
			return err
		}

		detail := fmt.Sprintf("batch=%s code=%s", batchID, code)
		s.audit.Record(actorID, domain.AuditActionImportCreate, "customer", customer.ID, &detail, clientIP)
		return nil
	}), nil
}

func (s *importService) ImportProducts(r io.Reader, actorID uint, clientIP string) (batch.ImportResult, error) {
	rows, err := parseCSV(r, "customer_code", "sku", "name")
	if err != nil {
		return batch.ImportResult{}, err
	}
	batchID := uuid.NewString()

	return batch.RunRows(rows, func(row map[string]string) error {
		customerCode := utils.NormalizeCode(row["customer_code"])
		if customerCode == "" {
			return errors.New("customer_code is required")
		}
		sku := row["sku"]
		if sku == "" {
			return errors.New("sku is required")
		}
		name := row["name"]
		if name == "" {
			return errors.New("name is required")
		}

		var unitValue *decimal.Decimal
		if raw := row["unit_value"]; raw != "" {
			v, err := decimal.NewFromString(raw)
			if err != nil || v.IsNegative() {
				return errors.New("unit_value must be a non-negative number")
			}
			unitValue = &v
		}

		// a product may never be created without its customer
		customer, err := s.customerRepo.FindByCode(customerCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("customer %q not found", customerCode)
			}
			return err
		}

		if _, err := s.productRepo.FindByCustomerAndSKU(customer.ID, sku); err == nil {
			return fmt.Errorf("sku %q already exists for customer %q", sku, customerCode)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		product := &domain.Product{
			CustomerID: customer.ID,
			SKU:        sku,
			Name:       name,
			UnitValue:  unitValue,
		}
		if err := s.productRepo.Create(product); err != nil {
			if helper.IsDuplicateKey(err) {
				return fmt.Errorf("sku %q already exists for customer %q", sku, customerCode)
			}
			return err
		}

		detail := fmt.Sprintf("batch=%s sku=%s", batchID, sku)
		s.audit.Record(actorID, domain.AuditActionImportCreate, "product", product.ID, &detail, clientIP)
		return nil
	}), nil
}

func (s *importService) ImportUsers(r io.Reader, actorID uint, clientIP string) (batch.ImportResult, error) {
	rows, err := parseCSV(r, "email", "username", "password")
	if err != nil {
		return batch.ImportResult{}, err
	}
	batchID := uuid.NewString()

	return batch.RunRows(rows, func(row map[string]string) error {
		email := utils.NormalizeEmail(row["email"])
		if email == "" {
			return errors.New("email is required")
		}
		if err := utils.ValidEmail(email); err != nil {
			return err
		}
		username := utils.NormalizeUsername(row["username"])
		if username == "" {
			return errors.New("username is required")
		}
		password := row["password"]
		if len(password) < 6 {
			return errors.New("password must be at least 6 characters")
		}
		role := strings.ToUpper(row["role"])
		if role == "" {
			role = domain.RoleStaff
		}
		if role != domain.RoleAdmin && role != domain.RoleStaff {
			return fmt.Errorf("unknown role %q", role)
		}

		if _, err := s.userRepo.FindUserByEmail(email); err == nil {
			return fmt.Errorf("email %q already exists", email)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := s.userRepo.FindUserByUsername(username); err == nil {
			return fmt.Errorf("username %q already exists", username)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return errors.New("failed to hash password")
		}

		user := &domain.User{
			Email:              email,
			Username:           username,
			PasswordHash:       string(hashed),
			DisplayName:        row["display_name"],
			Role:               role,
			Status:             "active",
			MustChangePassword: true,
		}
		if _, err := s.userRepo.CreateUser(user); err != nil {
			if helper.IsDuplicateKey(err) {
				return fmt.Errorf("email %q or username %q already exists", email, username)
			}
			return err
		}

		detail := fmt.Sprintf("batch=%s username=%s", batchID, username)
		s.audit.Record(actorID, domain.AuditActionImportCreate, "user", user.ID, &detail, clientIP)
		return nil
	}), nil
}

func (s *importService) ImportLocations(r io.Reader, actorID uint, clientIP string) (batch.ImportResult, error) {
	rows, err := parseCSV(r, "code", "zone", "aisle", "rack")
	if err != nil {
		return batch.ImportResult{}, err
	}
	batchID := uuid.NewString()

	return batch.RunRows(rows, func(row map[string]string) error {
		code := utils.NormalizeCode(row["code"])
		if code == "" {
			return errors.New("code is required")
		}
		zone := row["zone"]
		if zone == "" {
			return errors.New("zone is required")
		}
		aisle := row["aisle"]
		if aisle == "" {
			return errors.New("aisle is required")
		}
		rack := row["rack"]
		if rack == "" {
			return errors.New("rack is required")
		}
		var description *string
		if d := row["description"]; d != "" {
			description = &d
		}

		location := &domain.WarehouseLocation{
			Code:        code,
			Zone:        zone,
			Aisle:       aisle,
			Rack:        rack,
			Description: description,
		}
		// re-imports are idempotent: an existing code is updated
		created, err := s.locationRepo.UpsertByCode(location)
		if err != nil {
			return err
		}

		action := domain.AuditActionImportUpdate
		if created {
			action = domain.AuditActionImportCreate
		}
		detail := fmt.Sprintf("batch=%s code=%s", batchID, code)
		s.audit.Record(actorID, action, "warehouse_location", location.ID, &detail, clientIP)
		return nil
	}), nil
}
