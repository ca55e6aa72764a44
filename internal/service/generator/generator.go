package generator

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// Generator генерирует вопросы. Одна генерация - это до MaxAttempts
// независимых попыток; попытка не имеет побочных эффектов, поэтому её
// безопасно повторять без отката.
type Generator struct {
	cfg        Config
	categories repository.CategoryRepository
	questions  repository.QuestionRepository
	modes      repository.GameModeRepository
	weights    repository.WeightRepository
	kb         KnowledgeBase

	mu  sync.Mutex
	rng *rand.Rand
}

// New создает новый генератор вопросов
func New(
	cfg Config,
	categories repository.CategoryRepository,
	questions repository.QuestionRepository,
	modes repository.GameModeRepository,
	weights repository.WeightRepository,
	knowledgeBase KnowledgeBase,
) *Generator {
	if cfg.NumChoices <= 0 {
		cfg.NumChoices = DefaultConfig().NumChoices
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Generator{
		cfg:        cfg,
		categories: categories,
		questions:  questions,
		modes:      modes,
		weights:    weights,
		kb:         knowledgeBase,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// rng защищён мьютексом: генератор делится между HTTP-обработчиками
func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func (g *Generator) float64v() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng.Shuffle(n, swap)
}

// Generate выполняет до MaxAttempts попыток генерации. Повторяются только
// GenerationError; неожиданные ошибки (недоступное хранилище и т.п.)
// всплывают сразу, чтобы не маскировать баги под неудачную генерацию.
func (g *Generator) Generate(ctx context.Context, req Request) (*RenderedQuestion, error) {
	var lastReason string
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		rendered, err := g.attempt(ctx, req)
		if err == nil {
			rendered.GenerationID = uuid.NewString()
			return rendered, nil
		}

		var genErr *GenerationError
		if !errors.As(err, &genErr) {
			return nil, err
		}
		lastReason = genErr.Reason
		log.Printf("[Generator] Попытка %d/%d не удалась: %s", attempt, g.cfg.MaxAttempts, genErr.Reason)
	}
	return nil, genErrorf("no question generated after %d attempts (last reason: %s)", g.cfg.MaxAttempts, lastReason)
}

// attempt - одна попытка генерации: категория -> вес -> сложность ->
// источник -> вопрос -> режим -> рендеринг
func (g *Generator) attempt(ctx context.Context, req Request) (*RenderedQuestion, error) {
	category, err := g.pickCategory()
	if err != nil {
		return nil, err
	}

	weight, err := g.effectiveWeight(req, category.ID)
	if err != nil {
		return nil, err
	}
	difficulty := g.pickDifficulty(weight)

	source, err := g.pickSource(req.Source)
	if err != nil {
		return nil, err
	}

	question, err := g.pickQuestion(source, req.QuestionID, category, difficulty)
	if err != nil {
		return nil, err
	}

	mode, err := g.pickGameMode()
	if err != nil {
		return nil, err
	}
	if !mode.Allows(question.RequiredAnswerMode()) {
		return nil, genErrorf("game mode %q does not allow answer mode %q", mode.Name, question.RequiredAnswerMode())
	}

	return g.render(ctx, question, category, mode)
}

func (g *Generator) pickCategory() (*entity.Category, error) {
	categories, err := g.categories.GetAll()
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, genErrorf("no categories exist")
	}
	return &categories[g.intn(len(categories))], nil
}

// effectiveWeight вычисляет эффективный вес пары (пользователь, категория).
// Переопределение имеет приоритет; категория, отсутствующая в
// переопределении, инициализируется нулём (с записью в хранилище, если
// пользователь известен). Для анонима вес берётся равномерно из [0, 10).
func (g *Generator) effectiveWeight(req Request, categoryID uint) (float64, error) {
	if req.CustomWeight != nil {
		if w, ok := req.CustomWeight[categoryID]; ok {
			return w, nil
		}
		if req.UserID != nil {
			if _, err := g.weights.EnsureAndGet(*req.UserID, categoryID); err != nil {
				return 0, err
			}
		}
		return 0.0, nil
	}
	if req.UserID != nil {
		return g.weights.EnsureAndGet(*req.UserID, categoryID)
	}
	return g.float64v() * 10, nil
}

// pickDifficulty отображает вес в сложность. Рост веса только открывает
// более высокие уровни, но никогда их не навязывает.
func (g *Generator) pickDifficulty(weight float64) entity.Difficulty {
	switch {
	case weight < 5:
		return entity.DifficultyEasy
	case weight < 10:
		tiers := []entity.Difficulty{entity.DifficultyEasy, entity.DifficultyMedium}
		return tiers[g.intn(len(tiers))]
	default:
		tiers := []entity.Difficulty{entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard}
		return tiers[g.intn(len(tiers))]
	}
}

// pickSource выбирает источник вопроса среди доступных (имеющих хотя бы
// один активный вопрос). Принудительный источник должен быть доступен.
func (g *Generator) pickSource(forced entity.QuestionSource) (entity.QuestionSource, error) {
	available, err := g.questions.AvailableSources()
	if err != nil {
		return "", err
	}
	if len(available) == 0 {
		return "", genErrorf("no question sources available")
	}

	if forced != "" {
		for _, s := range available {
			if s == forced {
				return forced, nil
			}
		}
		return "", genErrorf("forced source %q is not available", forced)
	}
	return available[g.intn(len(available))], nil
}

// pickQuestion возвращает конкретный вопрос: принудительный по ID либо
// случайный среди активных вопросов категории и сложности
func (g *Generator) pickQuestion(
	source entity.QuestionSource,
	forcedID uint,
	category *entity.Category,
	difficulty entity.Difficulty,
) (entity.Question, error) {
	if forcedID != 0 {
		return g.getQuestionByID(source, forcedID)
	}

	switch source {
	case entity.SourceSeeded:
		matches, err := g.questions.FindSeeded(category.ID, difficulty)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, genErrorf("no active %s questions for category %d difficulty %s", source, category.ID, difficulty)
		}
		return &matches[g.intn(len(matches))], nil
	case entity.SourceTextCustom:
		matches, err := g.questions.FindTextCustom(category.ID, difficulty)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, genErrorf("no active %s questions for category %d difficulty %s", source, category.ID, difficulty)
		}
		return &matches[g.intn(len(matches))], nil
	case entity.SourceImageCustom:
		matches, err := g.questions.FindImageCustom(category.ID, difficulty)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, genErrorf("no active %s questions for category %d difficulty %s", source, category.ID, difficulty)
		}
		return &matches[g.intn(len(matches))], nil
	default:
		return nil, genErrorf("unknown question source %q", source)
	}
}

func (g *Generator) getQuestionByID(source entity.QuestionSource, id uint) (entity.Question, error) {
	var (
		question entity.Question
		err      error
	)
	switch source {
	case entity.SourceSeeded:
		question, err = g.questions.GetSeededByID(id)
	case entity.SourceTextCustom:
		question, err = g.questions.GetTextCustomByID(id)
	case entity.SourceImageCustom:
		question, err = g.questions.GetImageCustomByID(id)
	default:
		return nil, genErrorf("unknown question source %q", source)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, genErrorf("%s question %d not found", source, id)
		}
		return nil, err
	}
	return question, nil
}

func (g *Generator) pickGameMode() (*entity.GameMode, error) {
	modes, err := g.modes.GetAll()
	if err != nil {
		return nil, err
	}
	if len(modes) == 0 {
		return nil, genErrorf("no game modes exist")
	}
	return &modes[g.intn(len(modes))], nil
}

// render диспетчеризует рендеринг по варианту вопроса
func (g *Generator) render(
	ctx context.Context,
	question entity.Question,
	category *entity.Category,
	mode *entity.GameMode,
) (*RenderedQuestion, error) {
	switch q := question.(type) {
	case *entity.SeededQuestion:
		return g.renderSeeded(ctx, q, category, mode)
	case *entity.TextCustomQuestion:
		return g.renderCustom(customInput{
			text:       q.Text,
			choices:    q.Choices,
			answers:    q.Answers,
			difficulty: q.Difficulty,
			source:     entity.SourceTextCustom,
			valueType:  ChoicesTypeText,
		}, category, mode)
	case *entity.ImageCustomQuestion:
		return g.renderCustom(customInput{
			text:       q.Text,
			choices:    q.Choices,
			answers:    q.Answers,
			difficulty: q.Difficulty,
			source:     entity.SourceImageCustom,
			valueType:  ChoicesTypeImage,
			urlPrefix:  g.cfg.MediaBaseURL,
		}, category, mode)
	default:
		return nil, genErrorf("unsupported question variant %T", question)
	}
}
