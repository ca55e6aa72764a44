package service

import (
	"strings"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
)

// UserService предоставляет операции над профилем пользователя
type UserService struct {
	userRepo     repository.UserRepository
	mediaBaseURL string
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, mediaBaseURL string) *UserService {
	return &UserService{
		userRepo:     userRepo,
		mediaBaseURL: mediaBaseURL,
	}
}

// GetByID возвращает пользователя по ID
func (s *UserService) GetByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// AvatarURL возвращает абсолютный URL аватара пользователя
func (s *UserService) AvatarURL(user *entity.User) string {
	if user.ProfilePicture == "" {
		return ""
	}
	if strings.HasPrefix(user.ProfilePicture, "http://") || strings.HasPrefix(user.ProfilePicture, "https://") {
		return user.ProfilePicture
	}
	if s.mediaBaseURL == "" {
		return user.ProfilePicture
	}
	return strings.TrimRight(s.mediaBaseURL, "/") + "/" + strings.TrimLeft(user.ProfilePicture, "/")
}
