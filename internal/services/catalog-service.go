package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/dto"
	"github.com/stockguard/damage_service/internal/helper"
	"github.com/stockguard/damage_service/internal/repository"
	"github.com/stockguard/damage_service/pkg/utils"
	"gorm.io/gorm"
)

// CatalogService covers the customer/product/location reference data
// that damage reports hang off.
type CatalogService interface {
	CreateCustomer(input dto.CreateCustomerRequest, actorID uint, clientIP string) (*domain.Customer, error)
	GetCustomer(customerID uint) (*domain.Customer, error)
	ListCustomers(limit, offset int) ([]domain.Customer, error)
	DeactivateCustomer(customerID uint, actorID uint, clientIP string) error

	CreateProduct(input dto.CreateProductRequest, actorID uint, clientIP string) (*domain.Product, error)
	ListProducts(customerID uint, limit, offset int) ([]domain.Product, error)

	ListLocations(limit, offset int) ([]domain.WarehouseLocation, error)
}

type catalogService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	audit        AuditService
}

func NewCatalogService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	audit AuditService,
) CatalogService {
	return &catalogService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		audit:        audit,
	}
}

func (c *catalogService) CreateCustomer(input dto.CreateCustomerRequest, actorID uint, clientIP string) (*domain.Customer, error) {
	code := utils.NormalizeCode(input.Code)
	if code == "" {
		return nil, helper.Validationf("code is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, helper.Validationf("name is required")
	}

	var contactEmail *string
	if input.ContactEmail != nil && strings.TrimSpace(*input.ContactEmail) != "" {
		e := utils.NormalizeEmail(*input.ContactEmail)
		if err := utils.ValidEmail(e); err != nil {
			return nil, helper.Validationf("contact_email: %s", err.Error())
		}
		contactEmail = &e
	}

	if _, err := c.customerRepo.FindByCode(code); err == nil {
		return nil, helper.Conflictf("customer code %q already exists", code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer := &domain.Customer{
		Code:         code,
		Name:         name,
		ContactEmail: contactEmail,
		Phone:        input.Phone,
		IsActive:     true,
	}
	if err := c.customerRepo.Create(customer); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.Conflictf("customer code %q already exists", code)
		}
		return nil, err
	}

	c.audit.Record(actorID, domain.AuditActionCreate, "customer", customer.ID, &customer.Code, clientIP)
	return customer, nil
}

func (c *catalogService) GetCustomer(customerID uint) (*domain.Customer, error) {
	customer, err := c.customerRepo.FindByID(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NotFound("customer")
		}
		return nil, err
	}
	return customer, nil
}

func (c *catalogService) ListCustomers(limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return c.customerRepo.List(limit, offset)
}

// DeactivateCustomer soft-deletes: removing the row would orphan the
// customer's products and reports.
func (c *catalogService) DeactivateCustomer(customerID uint, actorID uint, clientIP string) error {
	customer, err := c.GetCustomer(customerID)
	if err != nil {
		return err
	}
	if !customer.IsActive {
		return helper.Conflictf("customer %q is already inactive", customer.Code)
	}

	customer.IsActive = false
	if err := c.customerRepo.Save(customer); err != nil {
		return err
	}

	c.audit.Record(actorID, domain.AuditActionDeactivate, "customer", customer.ID, &customer.Code, clientIP)
	return nil
}

func (c *catalogService) CreateProduct(input dto.CreateProductRequest, actorID uint, clientIP string) (*domain.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, helper.Validationf("sku is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, helper.Validationf("name is required")
	}

	var unitValue *decimal.Decimal
	if input.UnitValue != nil && strings.TrimSpace(*input.UnitValue) != "" {
		v, err := decimal.NewFromString(strings.TrimSpace(*input.UnitValue))
		if err != nil || v.IsNegative() {
			return nil, helper.Validationf("unit_value must be a non-negative number")
		}
		unitValue = &v
	}

	customer, err := c.GetCustomer(input.CustomerID)
	if err != nil {
		return nil, err
	}

	if _, err := c.productRepo.FindByCustomerAndSKU(customer.ID, sku); err == nil {
		return nil, helper.Conflictf("sku %q already exists for customer %q", sku, customer.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &domain.Product{
		CustomerID: customer.ID,
		SKU:        sku,
		Name:       name,
		UnitValue:  unitValue,
	}
	if err := c.productRepo.Create(product); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.Conflictf("sku %q already exists for customer %q", sku, customer.Code)
		}
		return nil, err
	}

	c.audit.Record(actorID, domain.AuditActionCreate, "product", product.ID, &product.SKU, clientIP)
	return product, nil
}

func (c *catalogService) ListProducts(customerID uint, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if _, err := c.GetCustomer(customerID); err != nil {
		return nil, err
	}
	return c.productRepo.ListByCustomer(customerID, limit, offset)
}

func (c *catalogService) ListLocations(limit, offset int) ([]domain.WarehouseLocation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return c.locationRepo.List(limit, offset)
}
