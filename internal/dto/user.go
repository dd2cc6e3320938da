package dto

import "github.com/yukikurage/todo-api/internal/models"

// RegisterRequest is the body accepted by user registration
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required"`
	Email     *string `json:"email"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Password  string  `json:"password" binding:"required"`
}

// LoginRequest carries OAuth2 password-form credentials
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token string `json:"token"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64  `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	IsActive  bool    `json:"is_active"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
	}
}
