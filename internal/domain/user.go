package domain

import "time"

// Roles a user can register with. Buyers purchase produce, sellers list it.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest mirrors the validation rules the original API enforced.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=6,max=30"`
	Email    string `json:"email" binding:"required,email,min=10,max=40"`
	Password string `json:"password" binding:"required,min=6,max=25"`
	Phone    string `json:"phone" binding:"required,min=10"`
	Role     string `json:"role" binding:"required,oneof=buyer seller"`
	Location string `json:"location" binding:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,min=6"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse carries the signed token plus the public user fields.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
