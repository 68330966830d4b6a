package repository

import (
	"errors"

	"github.com/stockguard/damage_service/internal/domain"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *domain.Product) error
	FindByID(productID uint) (*domain.Product, error)
	FindByCustomerAndSKU(customerID uint, sku string) (*domain.Product, error)
	ListByCustomer(customerID uint, limit, offset int) ([]domain.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *domain.Product) error {
	if product == nil {
		return errors.New("nil product")
	}
	return r.db.Create(product).Error
}

func (r *productRepository) FindByID(productID uint) (*domain.Product, error) {
	product := &domain.Product{}
	if err := r.db.First(product, productID).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) FindByCustomerAndSKU(customerID uint, sku string) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.db.Where("customer_id = ? AND sku = ?", customerID, sku).First(product).Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) ListByCustomer(customerID uint, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("customer_id = ?", customerID).
		Order("sku ASC").Limit(limit).Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
