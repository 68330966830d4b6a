package repository

import (
	"errors"

	"github.com/stockguard/damage_service/internal/domain"
	"gorm.io/gorm"
)

type LocationRepository interface {
	FindByCode(code string) (*domain.WarehouseLocation, error)
	// UpsertByCode creates the location or updates the existing row with
	// the same code. Returns true when a new row was created.
	UpsertByCode(location *domain.WarehouseLocation) (bool, error)
	List(limit, offset int) ([]domain.WarehouseLocation, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) FindByCode(code string) (*domain.WarehouseLocation, error) {
	location := &domain.WarehouseLocation{}
	if err := r.db.Where("code = ?", code).First(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

func (r *locationRepository) UpsertByCode(location *domain.WarehouseLocation) (bool, error) {
	if location == nil {
		return false, errors.New("nil location")
	}

	var existing domain.WarehouseLocation
	err := r.db.Where("code = ?", location.Code).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, r.db.Create(location).Error
		}
		return false, err
	}

	updates := map[string]any{
		"zone":  location.Zone,
		"aisle": location.Aisle,
		"rack":  location.Rack,
	}
	if location.Description != nil {
		updates["description"] = *location.Description
	}
	err = r.db.Model(&existing).Updates(updates).Error
	if err != nil {
		return false, err
	}
	location.ID = existing.ID
	return false, nil
}

func (r *locationRepository) List(limit, offset int) ([]domain.WarehouseLocation, error) {
	var locations []domain.WarehouseLocation
	err := r.db.Order("code ASC").Limit(limit).Offset(offset).Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}
