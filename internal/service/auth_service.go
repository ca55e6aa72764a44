package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
	"github.com/yourusername/quizgen-api/pkg/auth"
)

// AuthService предоставляет регистрацию и вход пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register регистрирует нового пользователя. Имя и email должны быть
// уникальными; пароль хешируется на уровне сущности при сохранении.
func (s *AuthService) Register(username, email, password string) (*entity.User, error) {
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrConflict, username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: email %q is taken", apperrors.ErrConflict, email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     "user",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	log.Printf("[AuthService] Зарегистрирован пользователь %d (%s)", user.ID, user.Username)
	return user, nil
}

// Login проверяет учётные данные и выпускает токен доступа.
// Неизвестное имя и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(username, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrUnauthorized
		}
		return nil, "", err
	}
	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
