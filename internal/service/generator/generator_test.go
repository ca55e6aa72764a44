package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/kb"
)

// newTestGenerator создает генератор с детерминированным rng
func newTestGenerator(
	cfg Config,
	categories *MockCategoryRepo,
	questions *MockQuestionRepo,
	modes *MockGameModeRepo,
	weights *MockWeightRepo,
	knowledgeBase *MockKnowledgeBase,
	seed int64,
) *Generator {
	g := New(cfg, categories, questions, modes, weights, knowledgeBase)
	g.rng = rand.New(rand.NewSource(seed))
	return g
}

// countryInstance создает экземпляр класса "Страна" со скалярными свойствами
func countryInstance(id uint, country, capital string) kb.Instance {
	return kb.Instance{
		ID:   id,
		Name: country,
		PropertyValues: []kb.PropertyValue{
			{PropertyType: kb.PropertyType{ID: 1, Name: "country", RawType: kb.RawTypeScalar}, RawValue: country},
			{PropertyType: kb.PropertyType{ID: 2, Name: "capital", RawType: kb.RawTypeScalar}, RawValue: capital},
		},
	}
}

func seededFixtures() (*MockCategoryRepo, *MockQuestionRepo, *MockGameModeRepo, *MockWeightRepo, *MockKnowledgeBase) {
	categories := new(MockCategoryRepo)
	categories.On("GetAll").Return([]entity.Category{{ID: 1, Name: "Geography"}}, nil)

	question := entity.SeededQuestion{
		ID:               11,
		MainClassID:      10,
		Text:             "Какая столица у страны {country}?",
		AnswerPropertyID: 2,
		AnswerMode:       entity.AnswerModeSingleRight,
		Difficulty:       entity.DifficultyEasy,
		CategoryID:       1,
		Active:           true,
	}
	questions := new(MockQuestionRepo)
	questions.On("AvailableSources").Return([]entity.QuestionSource{entity.SourceSeeded}, nil)
	questions.On("FindSeeded", uint(1), entity.DifficultyEasy).
		Return([]entity.SeededQuestion{question}, nil)

	modes := new(MockGameModeRepo)
	modes.On("GetAll").Return([]entity.GameMode{
		{ID: 1, Name: "classic", AllowAnswerModes: entity.StringArray{"single_right", "text"}},
	}, nil)

	knowledgeBase := new(MockKnowledgeBase)
	knowledgeBase.On("ListInstances", mock.Anything, uint(10)).Return([]kb.Instance{
		countryInstance(1, "Франция", "Париж"),
		countryInstance(2, "Германия", "Берлин"),
		countryInstance(3, "Испания", "Мадрид"),
		countryInstance(4, "Италия", "Рим"),
		countryInstance(5, "Польша", "Варшава"),
		countryInstance(6, "Норвегия", "Осло"),
	}, nil)

	return categories, questions, modes, new(MockWeightRepo), knowledgeBase
}

// Свойство: в успешно сгенерированном single_right вопросе ответ встречается
// среди вариантов ровно один раз, а длина списка равна NumChoices - при любом
// зерне генератора
func TestGenerate_SeededSingleRight(t *testing.T) {
	capitals := map[string]string{
		"Франция": "Париж", "Германия": "Берлин", "Испания": "Мадрид",
		"Италия": "Рим", "Польша": "Варшава", "Норвегия": "Осло",
	}

	for seed := int64(1); seed <= 25; seed++ {
		categories, questions, modes, weights, knowledgeBase := seededFixtures()
		g := newTestGenerator(DefaultConfig(), categories, questions, modes, weights, knowledgeBase, seed)

		rendered, err := g.Generate(context.Background(), Request{
			CustomWeight: map[uint]float64{1: 0},
		})
		require.NoError(t, err, "seed %d", seed)

		assert.Len(t, rendered.Choices, 4, "seed %d", seed)
		answerCount := 0
		unique := make(map[string]bool)
		for _, c := range rendered.Choices {
			if c == rendered.Answer {
				answerCount++
			}
			unique[c] = true
		}
		assert.Equal(t, 1, answerCount, "seed %d: answer must appear exactly once", seed)
		assert.Len(t, unique, 4, "seed %d: choices must be distinct", seed)

		// Ответ соответствует стране, подставленной в шаблон
		var subject string
		for country, capital := range capitals {
			if capital == rendered.Answer {
				subject = country
			}
		}
		require.NotEmpty(t, subject, "seed %d: answer %q is not a known capital", seed, rendered.Answer)
		assert.Equal(t, fmt.Sprintf("Какая столица у страны %s?", subject), rendered.Rendered)

		assert.NotEmpty(t, rendered.GenerationID)
		assert.Equal(t, entity.SourceSeeded, rendered.Source)
		assert.Equal(t, "Geography", rendered.Category)
		assert.Equal(t, "classic", rendered.GameMode)
		assert.Equal(t, entity.DifficultyEasy, rendered.Difficulty)
	}
}

func TestGenerate_SeededTextMode(t *testing.T) {
	categories, _, modes, weights, knowledgeBase := seededFixtures()

	question := entity.SeededQuestion{
		ID:               12,
		MainClassID:      10,
		Text:             "Назовите столицу страны {country}",
		AnswerPropertyID: 2,
		AnswerMode:       entity.AnswerModeText,
		Difficulty:       entity.DifficultyEasy,
		CategoryID:       1,
		Active:           true,
	}
	questions := new(MockQuestionRepo)
	questions.On("AvailableSources").Return([]entity.QuestionSource{entity.SourceSeeded}, nil)
	questions.On("FindSeeded", uint(1), entity.DifficultyEasy).
		Return([]entity.SeededQuestion{question}, nil)

	g := newTestGenerator(DefaultConfig(), categories, questions, modes, weights, knowledgeBase, 3)

	rendered, err := g.Generate(context.Background(), Request{CustomWeight: map[uint]float64{1: 0}})
	require.NoError(t, err)

	assert.Empty(t, rendered.Choices)
	assert.NotEmpty(t, rendered.Answer)
	assert.Equal(t, kb.RawTypeScalar, rendered.Type)
	assert.True(t, strings.HasPrefix(rendered.Rendered, "Назовите столицу страны "))
	assert.NotContains(t, rendered.Rendered, "{country}")
}

// Отображение веса в сложность монотонно: вес < 5 всегда дает easy,
// hard доступен только начиная с веса 10
func TestPickDifficulty(t *testing.T) {
	g := newTestGenerator(DefaultConfig(), nil, nil, nil, nil, nil, 42)

	for i := 0; i < 200; i++ {
		assert.Equal(t, entity.DifficultyEasy, g.pickDifficulty(4.99))
	}

	seenMedium := map[entity.Difficulty]bool{}
	for i := 0; i < 200; i++ {
		d := g.pickDifficulty(7.5)
		assert.NotEqual(t, entity.DifficultyHard, d)
		seenMedium[d] = true
	}
	assert.True(t, seenMedium[entity.DifficultyEasy])
	assert.True(t, seenMedium[entity.DifficultyMedium])

	seenHard := map[entity.Difficulty]bool{}
	for i := 0; i < 300; i++ {
		seenHard[g.pickDifficulty(10)] = true
	}
	assert.True(t, seenHard[entity.DifficultyEasy])
	assert.True(t, seenHard[entity.DifficultyMedium])
	assert.True(t, seenHard[entity.DifficultyHard])
}

// Кастомный вопрос с двумя вариантами не может быть отрендерен на четыре
// варианта: генерация завершается ошибкой после исчерпания бюджета попыток
func TestGenerate_CustomTooFewChoices(t *testing.T) {
	categories := new(MockCategoryRepo)
	categories.On("GetAll").Return([]entity.Category{{ID: 1, Name: "Movies"}}, nil)

	question := entity.TextCustomQuestion{
		ID:         5,
		Text:       "Кто снял этот фильм?",
		Choices:    entity.StringArray{"Нолан", "Тарантино"},
		Answers:    entity.StringArray{"Нолан"},
		Difficulty: entity.DifficultyEasy,
		CategoryID: 1,
		Active:     true,
	}
	questions := new(MockQuestionRepo)
	questions.On("AvailableSources").Return([]entity.QuestionSource{entity.SourceTextCustom}, nil)
	questions.On("FindTextCustom", uint(1), entity.DifficultyEasy).
		Return([]entity.TextCustomQuestion{question}, nil)

	modes := new(MockGameModeRepo)
	modes.On("GetAll").Return([]entity.GameMode{
		{ID: 1, Name: "classic", AllowAnswerModes: entity.StringArray{"single_right"}},
	}, nil)

	cfg := Config{NumChoices: 4, MaxAttempts: 5}
	g := newTestGenerator(cfg, categories, questions, modes, new(MockWeightRepo), new(MockKnowledgeBase), 7)

	_, err := g.Generate(context.Background(), Request{CustomWeight: map[uint]float64{1: 0}})
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Reason, "after 5 attempts")
}

func TestGenerate_ImageCustomPrefix(t *testing.T) {
	categories := new(MockCategoryRepo)
	categories.On("GetAll").Return([]entity.Category{{ID: 2, Name: "Art"}}, nil)

	question := entity.ImageCustomQuestion{
		ID:         8,
		Text:       "Какая из картин принадлежит Ван Гогу?",
		Choices:    entity.StringArray{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"},
		Answers:    entity.StringArray{"a.jpg", "b.jpg"},
		Difficulty: entity.DifficultyEasy,
		CategoryID: 2,
		Active:     true,
	}
	questions := new(MockQuestionRepo)
	questions.On("AvailableSources").Return([]entity.QuestionSource{entity.SourceImageCustom}, nil)
	questions.On("FindImageCustom", uint(2), entity.DifficultyEasy).
		Return([]entity.ImageCustomQuestion{question}, nil)

	modes := new(MockGameModeRepo)
	modes.On("GetAll").Return([]entity.GameMode{
		{ID: 1, Name: "classic", AllowAnswerModes: entity.StringArray{"single_right"}},
	}, nil)

	cfg := DefaultConfig()
	cfg.MediaBaseURL = "https://cdn.example.com/media"
	g := newTestGenerator(cfg, categories, questions, modes, new(MockWeightRepo), new(MockKnowledgeBase), 9)

	rendered, err := g.Generate(context.Background(), Request{CustomWeight: map[uint]float64{2: 0}})
	require.NoError(t, err)

	assert.Len(t, rendered.Choices, 4)
	assert.Equal(t, ChoicesTypeImage, rendered.ChoicesType)
	assert.Equal(t, ChoicesTypeImage, rendered.Type)
	assert.True(t, strings.HasPrefix(rendered.Answer, "https://cdn.example.com/media/"))
	for _, c := range rendered.Choices {
		assert.True(t, strings.HasPrefix(c, "https://cdn.example.com/media/"), "choice %q", c)
	}
	assert.Contains(t, rendered.Choices, rendered.Answer)
}

// Несовместимость режима с вопросом - ожидаемый сбой попытки, исчерпание
// бюджета дает GenerationError
func TestGenerate_IncompatibleGameMode(t *testing.T) {
	categories, questions, _, weights, knowledgeBase := seededFixtures()

	modes := new(MockGameModeRepo)
	modes.On("GetAll").Return([]entity.GameMode{
		{ID: 2, Name: "text_only", AllowAnswerModes: entity.StringArray{"text"}},
	}, nil)

	cfg := Config{NumChoices: 4, MaxAttempts: 3}
	g := newTestGenerator(cfg, categories, questions, modes, weights, knowledgeBase, 11)

	_, err := g.Generate(context.Background(), Request{CustomWeight: map[uint]float64{1: 0}})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	modes.AssertNumberOfCalls(t, "GetAll", 3)
}

// Ошибка хранилища не маскируется под неудачную генерацию: она всплывает
// сразу, без повторных попыток
func TestGenerate_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	categories := new(MockCategoryRepo)
	categories.On("GetAll").Return(nil, storeErr)

	g := newTestGenerator(DefaultConfig(), categories, new(MockQuestionRepo), new(MockGameModeRepo),
		new(MockWeightRepo), new(MockKnowledgeBase), 13)

	_, err := g.Generate(context.Background(), Request{})
	require.ErrorIs(t, err, storeErr)

	var genErr *GenerationError
	assert.False(t, errors.As(err, &genErr))
	categories.AssertNumberOfCalls(t, "GetAll", 1)
}

func TestGenerate_ForcedSourceUnavailable(t *testing.T) {
	categories := new(MockCategoryRepo)
	categories.On("GetAll").Return([]entity.Category{{ID: 1, Name: "Geography"}}, nil)

	questions := new(MockQuestionRepo)
	questions.On("AvailableSources").Return([]entity.QuestionSource{entity.SourceSeeded}, nil)

	cfg := Config{NumChoices: 4, MaxAttempts: 2}
	g := newTestGenerator(cfg, categories, questions, new(MockGameModeRepo),
		new(MockWeightRepo), new(MockKnowledgeBase), 17)

	_, err := g.Generate(context.Background(), Request{
		CustomWeight: map[uint]float64{1: 0},
		Source:       entity.SourceImageCustom,
	})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Reason, "not available")
}

func TestEffectiveWeight(t *testing.T) {
	t.Run("override has priority", func(t *testing.T) {
		g := newTestGenerator(DefaultConfig(), nil, nil, nil, new(MockWeightRepo), nil, 1)
		w, err := g.effectiveWeight(Request{
			UserID:       uintPtr(7),
			CustomWeight: map[uint]float64{3: 8.5},
		}, 3)
		require.NoError(t, err)
		assert.Equal(t, 8.5, w)
	})

	t.Run("category missing from override initializes zero and persists", func(t *testing.T) {
		weights := new(MockWeightRepo)
		weights.On("EnsureAndGet", uint(7), uint(3)).Return(0.0, nil)
		g := newTestGenerator(DefaultConfig(), nil, nil, nil, weights, nil, 1)

		w, err := g.effectiveWeight(Request{
			UserID:       uintPtr(7),
			CustomWeight: map[uint]float64{},
		}, 3)
		require.NoError(t, err)
		assert.Equal(t, 0.0, w)
		weights.AssertExpectations(t)
	})

	t.Run("known user without override reads store", func(t *testing.T) {
		weights := new(MockWeightRepo)
		weights.On("EnsureAndGet", uint(7), uint(3)).Return(11.0, nil)
		g := newTestGenerator(DefaultConfig(), nil, nil, nil, weights, nil, 1)

		w, err := g.effectiveWeight(Request{UserID: uintPtr(7)}, 3)
		require.NoError(t, err)
		assert.Equal(t, 11.0, w)
	})

	t.Run("anonymous draws from [0, 10)", func(t *testing.T) {
		g := newTestGenerator(DefaultConfig(), nil, nil, nil, nil, nil, 1)
		for i := 0; i < 100; i++ {
			w, err := g.effectiveWeight(Request{}, 3)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, w, 0.0)
			assert.Less(t, w, 10.0)
		}
	})
}

func TestResolveValue(t *testing.T) {
	t.Run("instance reference resolves to display name", func(t *testing.T) {
		knowledgeBase := new(MockKnowledgeBase)
		knowledgeBase.On("GetInstance", mock.Anything, "42").
			Return(&kb.Instance{ID: 42, Name: "Париж"}, nil)
		g := newTestGenerator(DefaultConfig(), nil, nil, nil, nil, knowledgeBase, 1)

		value, rawType, err := g.resolveValue(context.Background(), &kb.PropertyValue{
			PropertyType: kb.PropertyType{RawType: kb.RawTypeInstance},
			RawValue:     "42",
		})
		require.NoError(t, err)
		assert.Equal(t, "Париж", value)
		assert.Equal(t, kb.RawTypeInstance, rawType)
	})

	t.Run("image gets media prefix", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.KBMediaBaseURL = "https://kb.example.com/media/"
		g := newTestGenerator(cfg, nil, nil, nil, nil, nil, 1)

		value, rawType, err := g.resolveValue(context.Background(), &kb.PropertyValue{
			PropertyType: kb.PropertyType{RawType: kb.RawTypeImage},
			RawValue:     "flags/fr.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://kb.example.com/media/flags/fr.png", value)
		assert.Equal(t, kb.RawTypeImage, rawType)
	})

	t.Run("scalar passes through", func(t *testing.T) {
		g := newTestGenerator(DefaultConfig(), nil, nil, nil, nil, nil, 1)
		value, rawType, err := g.resolveValue(context.Background(), &kb.PropertyValue{
			PropertyType: kb.PropertyType{RawType: kb.RawTypeScalar},
			RawValue:     "Париж",
		})
		require.NoError(t, err)
		assert.Equal(t, "Париж", value)
		assert.Equal(t, kb.RawTypeScalar, rawType)
	})
}
