package generator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/kb"
)

// ============================================================================
// Моки зависимостей генератора
// ============================================================================

func uintPtr(v uint) *uint { return &v }

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

// MockKnowledgeBase реализует KnowledgeBase
type MockKnowledgeBase struct {
	mock.Mock
}

func (m *MockKnowledgeBase) ListInstances(ctx context.Context, classID uint) ([]kb.Instance, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kb.Instance), args.Error(1)
}

func (m *MockKnowledgeBase) GetInstance(ctx context.Context, instanceID string) (*kb.Instance, error) {
	args := m.Called(ctx, instanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kb.Instance), args.Error(1)
}
