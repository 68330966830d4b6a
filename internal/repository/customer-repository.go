package repository

import (
	"errors"

	"github.com/stockguard/damage_service/internal/domain"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *domain.Customer) error
	FindByID(customerID uint) (*domain.Customer, error)
	// FindByCode expects an already-normalized (uppercase) code.
	FindByCode(code string) (*domain.Customer, error)
	List(limit, offset int) ([]domain.Customer, error)
	Save(customer *domain.Customer) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *domain.Customer) error {
	if customer == nil {
		return errors.New("nil customer")
	}
	return r.db.Create(customer).Error
}

func (r *customerRepository) FindByID(customerID uint) (*domain.Customer, error) {
	customer := &domain.Customer{}
	if err := r.db.First(customer, customerID).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepository) FindByCode(code string) (*domain.Customer, error) {
	customer := &domain.Customer{}
	if err := r.db.Where("code = ?", code).First(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *customerRepository) List(limit, offset int) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := r.db.Order("code ASC").Limit(limit).Offset(offset).Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) Save(customer *domain.Customer) error {
	if customer == nil {
		return errors.New("nil customer")
	}
	return r.db.Save(customer).Error
}
