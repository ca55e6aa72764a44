package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// ContentService предоставляет административное наполнение: категории,
// игровые режимы и вопросы всех трёх источников
type ContentService struct {
	categoryRepo repository.CategoryRepository
	gameModeRepo repository.GameModeRepository
	questionRepo repository.QuestionRepository
	weightRepo   repository.WeightRepository
}

// NewContentService создает новый сервис наполнения
func NewContentService(
	categoryRepo repository.CategoryRepository,
	gameModeRepo repository.GameModeRepository,
	questionRepo repository.QuestionRepository,
	weightRepo repository.WeightRepository,
) *ContentService {
	return &ContentService{
		categoryRepo: categoryRepo,
		gameModeRepo: gameModeRepo,
		questionRepo: questionRepo,
		weightRepo:   weightRepo,
	}
}

// CreateCategory создает категорию и досоздаёт нулевые веса для всех
// существующих пользователей
func (s *ContentService) CreateCategory(name, description string) (*entity.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	if _, err := s.categoryRepo.GetByName(name); err == nil {
		return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrConflict, name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	category := &entity.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	if err := s.weightRepo.Backfill(); err != nil {
		// Категория уже создана; недостающие веса досоздадутся лениво
		// при первом чтении
		log.Printf("[ContentService] Backfill весов после создания категории %d не удался: %v", category.ID, err)
	}
	return category, nil
}

// GetCategories возвращает все категории
func (s *ContentService) GetCategories() ([]entity.Category, error) {
	return s.categoryRepo.GetAll()
}

// CreateGameMode создает игровой режим
func (s *ContentService) CreateGameMode(name string, allowAnswerModes []string) (*entity.GameMode, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: game mode name is required", apperrors.ErrValidation)
	}
	if len(allowAnswerModes) == 0 {
		return nil, fmt.Errorf("%w: at least one answer mode is required", apperrors.ErrValidation)
	}
	for _, m := range allowAnswerModes {
		if m != string(entity.AnswerModeSingleRight) && m != string(entity.AnswerModeText) {
			return nil, fmt.Errorf("%w: unknown answer mode %q", apperrors.ErrValidation, m)
		}
	}

	mode := &entity.GameMode{Name: name, AllowAnswerModes: allowAnswerModes}
	if err := s.gameModeRepo.Create(mode); err != nil {
		return nil, err
	}
	return mode, nil
}

// CreateSeededQuestion создает шаблонный вопрос
func (s *ContentService) CreateSeededQuestion(q *entity.SeededQuestion) error {
	if q.Text == "" {
		return fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if q.MainClassID == 0 || q.AnswerPropertyID == 0 {
		return fmt.Errorf("%w: knowledge base class and answer property are required", apperrors.ErrValidation)
	}
	if q.AnswerMode != entity.AnswerModeSingleRight && q.AnswerMode != entity.AnswerModeText {
		return fmt.Errorf("%w: unknown answer mode %q", apperrors.ErrValidation, q.AnswerMode)
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrValidation, q.Difficulty)
	}
	if _, err := s.categoryRepo.GetByID(q.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, q.CategoryID)
		}
		return err
	}
	q.Active = true
	return s.questionRepo.CreateSeeded(q)
}

// CreateTextCustomQuestion создает текстовый кастомный вопрос
func (s *ContentService) CreateTextCustomQuestion(q *entity.TextCustomQuestion) error {
	if err := s.validateCustom(q.Text, q.Choices, q.Answers, q.Difficulty, q.CategoryID); err != nil {
		return err
	}
	q.Active = true
	return s.questionRepo.CreateTextCustom(q)
}

// CreateImageCustomQuestion создает картиночный кастомный вопрос
func (s *ContentService) CreateImageCustomQuestion(q *entity.ImageCustomQuestion) error {
	if err := s.validateCustom(q.Text, q.Choices, q.Answers, q.Difficulty, q.CategoryID); err != nil {
		return err
	}
	q.Active = true
	return s.questionRepo.CreateImageCustom(q)
}

// validateCustom проверяет инварианты кастомного вопроса: не менее четырёх
// уникальных вариантов, ответы - непустое подмножество вариантов, и после
// исключения ответов остаётся не менее трёх дистракторов
func (s *ContentService) validateCustom(
	text string,
	choices, answers []string,
	difficulty entity.Difficulty,
	categoryID uint,
) error {
	if text == "" {
		return fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if !difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrValidation, difficulty)
	}
	if len(choices) < 4 {
		return fmt.Errorf("%w: at least 4 choices are required, got %d", apperrors.ErrValidation, len(choices))
	}
	unique := make(map[string]bool, len(choices))
	for _, c := range choices {
		if unique[c] {
			return fmt.Errorf("%w: duplicate choice %q", apperrors.ErrValidation, c)
		}
		unique[c] = true
	}
	if len(answers) == 0 {
		return fmt.Errorf("%w: at least one answer is required", apperrors.ErrValidation)
	}
	for _, a := range answers {
		if !unique[a] {
			return fmt.Errorf("%w: answer %q is not among choices", apperrors.ErrValidation, a)
		}
	}
	if len(choices)-len(answers) < 3 {
		return fmt.Errorf("%w: need at least 3 non-answer choices, got %d", apperrors.ErrValidation, len(choices)-len(answers))
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, categoryID)
		}
		return err
	}
	return nil
}

// BackfillWeights идемпотентно досоздаёт нулевые веса для всех пар
// (пользователь, категория). Используется как шаг начальной загрузки.
func (s *ContentService) BackfillWeights() error {
	return s.weightRepo.Backfill()
}
