package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	"github.com/yourusername/quizgen-api/internal/service/generator"
)

// ============================================================================
// Моки репозиториев и коллабораторов для тестов сервисов
// ============================================================================

// MockGameRepo реализует repository.GameRepository
type MockGameRepo struct {
	mock.Mock
}

func (m *MockGameRepo) Create(game *entity.Game) error {
	args := m.Called(game)
	return args.Error(0)
}

func (m *MockGameRepo) Update(game *entity.Game) error {
	args := m.Called(game)
	return args.Error(0)
}

func (m *MockGameRepo) GetByID(id uint) (*entity.Game, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepo) GetActiveByUser(userID uint) (*entity.Game, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepo) AbandonActiveByUser(userID uint, endedAt time.Time) error {
	args := m.Called(userID, endedAt)
	return args.Error(0)
}

func (m *MockGameRepo) GetPendingQuestion(gameID uint) (*entity.GameQuestion, error) {
	args := m.Called(gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameQuestion), args.Error(1)
}

func (m *MockGameRepo) GetAnsweredQuestions(gameID uint) ([]entity.GameQuestion, error) {
	args := m.Called(gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameQuestion), args.Error(1)
}

func (m *MockGameRepo) GetGameQuestions(gameID uint) ([]entity.GameQuestion, error) {
	args := m.Called(gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameQuestion), args.Error(1)
}

func (m *MockGameRepo) CreateQuestionHistory(history *entity.QuestionHistory) error {
	args := m.Called(history)
	return args.Error(0)
}

func (m *MockGameRepo) CreateGameQuestion(question *entity.GameQuestion) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockGameRepo) UpdateGameQuestion(question *entity.GameQuestion) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockGameRepo) BestCompletedScores() ([]repository.UserBestScore, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserBestScore), args.Error(1)
}

// MockWeightRepo реализует repository.WeightRepository
type MockWeightRepo struct {
	mock.Mock
}

func (m *MockWeightRepo) EnsureAndGet(userID, categoryID uint) (float64, error) {
	args := m.Called(userID, categoryID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWeightRepo) Set(userID, categoryID uint, weight float64) error {
	args := m.Called(userID, categoryID, weight)
	return args.Error(0)
}

func (m *MockWeightRepo) GetAllForUser(userID uint) (map[uint]float64, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]float64), args.Error(1)
}

func (m *MockWeightRepo) AggregateSession(userID uint, deltas map[uint]float64) (map[uint]float64, error) {
	args := m.Called(userID, deltas)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]float64), args.Error(1)
}

func (m *MockWeightRepo) Backfill() error {
	args := m.Called()
	return args.Error(0)
}

// MockUserRepo реализует repository.UserRepository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByIDs(ids []uint) ([]entity.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// MockCategoryRepo реализует repository.CategoryRepository
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(category *entity.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepo) GetAll() ([]entity.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepo) GetByID(id uint) (*entity.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepo) GetByName(name string) (*entity.Category, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

// MockGameModeRepo реализует repository.GameModeRepository
type MockGameModeRepo struct {
	mock.Mock
}

func (m *MockGameModeRepo) Create(gameMode *entity.GameMode) error {
	args := m.Called(gameMode)
	return args.Error(0)
}

func (m *MockGameModeRepo) GetAll() ([]entity.GameMode, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameMode), args.Error(1)
}

func (m *MockGameModeRepo) GetByName(name string) (*entity.GameMode, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameMode), args.Error(1)
}

// MockQuestionRepo реализует repository.QuestionRepository
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) CreateSeeded(q *entity.SeededQuestion) error {
	args := m.Called(q)
	return args.Error(0)
}

func (m *MockQuestionRepo) CreateTextCustom(q *entity.TextCustomQuestion) error {
	args := m.Called(q)
	return args.Error(0)
}

func (m *MockQuestionRepo) CreateImageCustom(q *entity.ImageCustomQuestion) error {
	args := m.Called(q)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetSeededByID(id uint) (*entity.SeededQuestion, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SeededQuestion), args.Error(1)
}

func (m *MockQuestionRepo) GetTextCustomByID(id uint) (*entity.TextCustomQuestion, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TextCustomQuestion), args.Error(1)
}

func (m *MockQuestionRepo) GetImageCustomByID(id uint) (*entity.ImageCustomQuestion, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ImageCustomQuestion), args.Error(1)
}

func (m *MockQuestionRepo) FindSeeded(categoryID uint, difficulty entity.Difficulty) ([]entity.SeededQuestion, error) {
	args := m.Called(categoryID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SeededQuestion), args.Error(1)
}

func (m *MockQuestionRepo) FindTextCustom(categoryID uint, difficulty entity.Difficulty) ([]entity.TextCustomQuestion, error) {
	args := m.Called(categoryID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TextCustomQuestion), args.Error(1)
}

func (m *MockQuestionRepo) FindImageCustom(categoryID uint, difficulty entity.Difficulty) ([]entity.ImageCustomQuestion, error) {
	args := m.Called(categoryID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ImageCustomQuestion), args.Error(1)
}

func (m *MockQuestionRepo) AvailableSources() ([]entity.QuestionSource, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuestionSource), args.Error(1)
}

// MockCacheRepo реализует repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

// MockGenerator реализует QuestionGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req generator.Request) (*generator.RenderedQuestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generator.RenderedQuestion), args.Error(1)
}

// MockRanker реализует Ranker
type MockRanker struct {
	mock.Mock
}

func (m *MockRanker) RankOf(userID uint) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRanker) Invalidate() error {
	args := m.Called()
	return args.Error(0)
}
