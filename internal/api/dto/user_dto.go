package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=6,max=64"`
}

// CredentialDTO 登录凭证,email 或 username 任填其一
type CredentialDTO struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	Password string  `json:"password" validate:"required"`
}

// AuthDTO 登录/注册成功后的令牌返回
type AuthDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 用户
type UserDTO struct {
	UserID    uint64     `json:"user_id"`
	Email     string     `json:"email,omitempty"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Bio       *string    `json:"bio,omitempty"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// UpdateProfileDTO 修改个人资料
type UpdateProfileDTO struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Bio  *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}
