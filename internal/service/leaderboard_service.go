package service

import (
	"errors"
	"log"
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// Ключ кеша отсортированных лучших результатов
const leaderboardCacheKey = "leaderboard:best_scores"

// LeaderboardEntry - строка таблицы лидеров
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
	Score          int    `json:"score"`
}

// LeaderboardPage - страница таблицы лидеров
type LeaderboardPage struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
}

// LeaderboardService считает ранги по лучшим результатам завершённых игр.
// Ранг - это 1-based позиция пользователя в списке, отсортированном по
// убыванию лучшего результата (при равенстве - по возрастанию ID).
type LeaderboardService struct {
	gameRepo repository.GameRepository
	userRepo repository.UserRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
}

// NewLeaderboardService создает новый сервис таблицы лидеров
func NewLeaderboardService(
	gameRepo repository.GameRepository,
	userRepo repository.UserRepository,
	cache repository.CacheRepository,
) *LeaderboardService {
	return &LeaderboardService{
		gameRepo: gameRepo,
		userRepo: userRepo,
		cache:    cache,
		cacheTTL: 5 * time.Minute,
	}
}

// bestScores возвращает отсортированные лучшие результаты, используя кеш
// как быстрый путь. Недоступность кеша не фатальна: список пересчитывается
// из базы.
func (s *LeaderboardService) bestScores() ([]repository.UserBestScore, error) {
	if s.cache != nil {
		var cached []repository.UserBestScore
		if err := s.cache.GetJSON(leaderboardCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[LeaderboardService] Ошибка чтения кеша лидерборда: %v", err)
		}
	}

	scores, err := s.gameRepo.BestCompletedScores()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(leaderboardCacheKey, scores, s.cacheTTL); err != nil {
			log.Printf("[LeaderboardService] Ошибка записи кеша лидерборда: %v", err)
		}
	}
	return scores, nil
}

// RankOf возвращает текущий ранг пользователя или 0, если у него ещё нет
// ни одной завершённой игры
func (s *LeaderboardService) RankOf(userID uint) (int, error) {
	scores, err := s.bestScores()
	if err != nil {
		return 0, err
	}
	for i, row := range scores {
		if row.UserID == userID {
			return i + 1, nil
		}
	}
	return 0, nil
}

// Invalidate сбрасывает кеш лидерборда. Вызывается при завершении игры,
// чтобы ранг после завершения считался по свежим данным.
func (s *LeaderboardService) Invalidate() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(leaderboardCacheKey)
}

// GetLeaderboard возвращает страницу таблицы лидеров с данными пользователей
func (s *LeaderboardService) GetLeaderboard(page, perPage int) (*LeaderboardPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	scores, err := s.bestScores()
	if err != nil {
		return nil, err
	}

	result := &LeaderboardPage{
		Entries: []LeaderboardEntry{},
		Total:   len(scores),
		Page:    page,
		PerPage: perPage,
	}

	start := (page - 1) * perPage
	if start >= len(scores) {
		return result, nil
	}
	end := start + perPage
	if end > len(scores) {
		end = len(scores)
	}
	pageScores := scores[start:end]

	ids := make([]uint, 0, len(pageScores))
	for _, row := range pageScores {
		ids = append(ids, row.UserID)
	}
	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]struct {
		username string
		picture  string
	}, len(users))
	for _, u := range users {
		byID[u.ID] = struct {
			username string
			picture  string
		}{u.Username, u.ProfilePicture}
	}

	for i, row := range pageScores {
		entry := LeaderboardEntry{
			Rank:   start + i + 1,
			UserID: row.UserID,
			Score:  row.Score,
		}
		if info, ok := byID[row.UserID]; ok {
			entry.Username = info.username
			entry.ProfilePicture = info.picture
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}
