package dto

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role" validate:"oneof=ADMIN STAFF"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token              string `json:"token"`
	UserID             uint   `json:"user_id"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type AuthResponse struct {
	UserID uint    `json:"user_id"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	Iat    float64 `json:"iat"`
	Expiry float64 `json:"expiry"`
}
