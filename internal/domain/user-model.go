package domain

import "gorm.io/gorm"

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	Username     string `gorm:"type:varchar(60);uniqueIndex;not null" json:"username"`
	PasswordHash string `json:"-"`
	DisplayName  string `gorm:"type:varchar(200)" json:"display_name"`
	Role         string `gorm:"type:varchar(20);not null;default:STAFF" json:"role"`
	Status       string `gorm:"type:varchar(20);not null;default:active" json:"status"`
	// Imported users must change their password on first login.
	MustChangePassword bool `gorm:"not null;default:false" json:"must_change_password"`
	gorm.Model
}
