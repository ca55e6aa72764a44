// Package dto содержит структуры запросов и ответов HTTP API
package dto

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse - публичное представление пользователя
type UserResponse struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture"`
}

// AuthResponse - ответ на успешный вход
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
