package dto

// ── 认证模块请求 ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"     binding:"required,oneof=Student Teacher"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ── 认证模块响应 ──

// UserResponse 用户信息响应（不含密码散列）
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// UserListResponse 用户列表响应（维护接口）
type UserListResponse struct {
	Count int            `json:"count"`
	Users []UserResponse `json:"users"`
}

// [自证通过] internal/dto/auth.go
