package repository

import (
	"errors"

	"github.com/stockguard/damage_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByUsername(username string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	SaveUser(user *domain.User) error
	ListUsers(limit, offset int) ([]domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByUsername(username string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "username = ?", username).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	return r.db.Save(user).Error
}

func (r *userRepository) ListUsers(limit, offset int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.Order("username ASC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
