package services

import (
	"errors"
	"strings"

	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/dto"
	"github.com/stockguard/damage_service/internal/helper"
	"github.com/stockguard/damage_service/internal/repository"
	"github.com/stockguard/damage_service/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	// Register is admin-driven; self-signup does not exist in a
	// warehouse back office.
	Register(input dto.RegisterRequest, actorID uint, clientIP string) (*domain.User, error)
	Login(input dto.UserLogin) (*dto.LoginResponse, error)
	GetProfile(userID uint) (*domain.User, error)
	ChangePassword(userID uint, input dto.ChangePasswordRequest) error
	IsAdmin(userID uint) (bool, error)
	ListUsers(limit, offset int) ([]domain.User, error)
}

type userService struct {
	repo  repository.UserRepository
	audit AuditService
	auth  helper.Auth
}

func NewUserService(repo repository.UserRepository, audit AuditService, auth helper.Auth) UserService {
	return &userService{
		repo:  repo,
		audit: audit,
		auth:  auth,
	}
}

func (u *userService) Register(input dto.RegisterRequest, actorID uint, clientIP string) (*domain.User, error) {
	email := utils.NormalizeEmail(input.Email)
	username := utils.NormalizeUsername(input.Username)

	if email == "" || username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, helper.Validationf("email, username and password are required")
	}
	if err := utils.ValidEmail(email); err != nil {
		return nil, helper.Validationf("%s", err.Error())
	}
	if len(input.Password) < 6 {
		return nil, helper.Validationf("password must be at least 6 characters")
	}

	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if role == "" {
		role = domain.RoleStaff
	}
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return nil, helper.Validationf("invalid role")
	}

	if _, err := u.repo.FindUserByEmail(email); err == nil {
		return nil, helper.Conflictf("email %q already exists", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := u.repo.FindUserByUsername(username); err == nil {
		return nil, helper.Conflictf("username %q already exists", username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         role,
		Status:       "active",
	}
	if _, err := u.repo.CreateUser(user); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.Conflictf("email or username already exists")
		}
		return nil, err
	}

	u.audit.Record(actorID, domain.AuditActionCreate, "user", user.ID, &user.Username, clientIP)
	return user, nil
}

func (u *userService) Login(input dto.UserLogin) (*dto.LoginResponse, error) {
	email := utils.NormalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return nil, errors.New("invalid email or password")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return nil, errors.New("invalid email or password")
	}

	if user.Status != "" && user.Status != "active" {
		return nil, errors.New("account is not active")
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := u.auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.New("could not generate token")
	}

	return &dto.LoginResponse{
		Token:              token,
		UserID:             user.ID,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	}, nil
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword clears the must-change flag set for imported users.
func (u *userService) ChangePassword(userID uint, input dto.ChangePasswordRequest) error {
	newPassword := strings.TrimSpace(input.NewPassword)
	if len(newPassword) < 6 {
		return helper.Validationf("password must be at least 6 characters")
	}

	user, err := u.GetProfile(userID)
	if err != nil {
		return err
	}
	if err := u.auth.VerifyPassword(input.CurrentPassword, user.PasswordHash); err != nil {
		return helper.Validationf("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.PasswordHash = string(hashedPassword)
	user.MustChangePassword = false
	return u.repo.SaveUser(user)
}

func (u *userService) IsAdmin(userID uint) (bool, error) {
	user, err := u.GetProfile(userID)
	if err != nil {
		return false, err
	}
	return user.Role == domain.RoleAdmin, nil
}

func (u *userService) ListUsers(limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return u.repo.ListUsers(limit, offset)
}
