package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Contains проверяет наличие значения в массиве
func (o StringArray) Contains(v string) bool {
	for _, s := range o {
		if s == v {
			return true
		}
	}
	return false
}

// AnswerMode определяет, как пользователь отвечает на вопрос
type AnswerMode string

const (
	// AnswerModeSingleRight - один правильный вариант среди нескольких
	AnswerModeSingleRight AnswerMode = "single_right"
	// AnswerModeText - свободный текстовый ввод
	AnswerModeText AnswerMode = "text"
)

// Difficulty - уровень сложности вопроса
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid возвращает true для известного уровня сложности
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Score возвращает количество очков за правильный ответ данной сложности
func (d Difficulty) Score() int {
	switch d {
	case DifficultyMedium:
		return 100
	case DifficultyHard:
		return 200
	default:
		return 50
	}
}

// WeightDelta возвращает изменение веса категории за ответ данной сложности.
// ВНИМАНИЕ: неверный ответ на hard даёт +1, а не отрицательное значение.
// Значение унаследовано от текущей балансировки и намеренно не исправлено
// до решения продукта.
func (d Difficulty) WeightDelta(correct bool) float64 {
	if correct {
		switch d {
		case DifficultyMedium:
			return 1.0
		case DifficultyHard:
			return 2.0
		default:
			return 0.5
		}
	}
	switch d {
	case DifficultyMedium:
		return -0.5
	case DifficultyHard:
		return 1.0
	default:
		return -0.25
	}
}

// QuestionSource - источник вопроса
type QuestionSource string

const (
	// SourceSeeded - вопрос, генерируемый из базы знаний по шаблону
	SourceSeeded QuestionSource = "seed_question"
	// SourceTextCustom - заранее составленный текстовый вопрос
	SourceTextCustom QuestionSource = "text_custom_question"
	// SourceImageCustom - заранее составленный вопрос с изображениями
	SourceImageCustom QuestionSource = "image_custom_question"
)

// Question - общий интерфейс трёх вариантов вопроса.
// Генератор работает с вариантами через этот интерфейс и диспетчеризует
// рендеринг по Source().
type Question interface {
	Source() QuestionSource
	QuestionCategory() *Category
	QuestionDifficulty() Difficulty
	// RequiredAnswerMode - режим ответа, который должен разрешать игровой режим,
	// чтобы вопрос можно было задать
	RequiredAnswerMode() AnswerMode
}

// SeededQuestion - шаблонный вопрос, наполняемый данными из базы знаний.
// Text содержит плейсхолдеры вида {property}, подставляемые значениями
// случайного экземпляра класса MainClassID.
type SeededQuestion struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	MainClassID      uint       `gorm:"not null" json:"main_class_id"`
	Text             string     `gorm:"column:question;not null" json:"question"`
	AnswerPropertyID uint       `gorm:"not null" json:"answer_property_id"`
	AnswerMode       AnswerMode `gorm:"size:100;not null" json:"answer_mode"`
	Difficulty       Difficulty `gorm:"size:100;not null;index" json:"difficulty_level"`
	CategoryID       uint       `gorm:"not null;index" json:"category_id"`
	Category         *Category  `json:"category,omitempty"`
	Active           bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (SeededQuestion) TableName() string {
	return "seeded_questions"
}

func (q *SeededQuestion) Source() QuestionSource          { return SourceSeeded }
func (q *SeededQuestion) QuestionCategory() *Category     { return q.Category }
func (q *SeededQuestion) QuestionDifficulty() Difficulty  { return q.Difficulty }
func (q *SeededQuestion) RequiredAnswerMode() AnswerMode  { return q.AnswerMode }

// TemplateProperties извлекает имена свойств из плейсхолдеров шаблона.
// "Столица {country} - это {capital}?" -> ["country", "capital"]
func (q *SeededQuestion) TemplateProperties() []string {
	var props []string
	for _, part := range strings.Split(q.Text, "{") {
		if idx := strings.Index(part, "}"); idx >= 0 {
			props = append(props, part[:idx])
		}
	}
	return props
}

// TextCustomQuestion - заранее составленный вопрос с текстовыми вариантами.
// Answers - подмножество Choices; правильным может быть любой из них.
type TextCustomQuestion struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Text       string      `gorm:"column:question;not null" json:"question"`
	Choices    StringArray `gorm:"type:jsonb;not null" json:"choices"`
	Answers    StringArray `gorm:"type:jsonb;not null" json:"answers"`
	Difficulty Difficulty  `gorm:"size:100;not null;index" json:"difficulty_level"`
	CategoryID uint        `gorm:"not null;index" json:"category_id"`
	Category   *Category   `json:"category,omitempty"`
	Active     bool        `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (TextCustomQuestion) TableName() string {
	return "text_custom_questions"
}

func (q *TextCustomQuestion) Source() QuestionSource         { return SourceTextCustom }
func (q *TextCustomQuestion) QuestionCategory() *Category    { return q.Category }
func (q *TextCustomQuestion) QuestionDifficulty() Difficulty { return q.Difficulty }
func (q *TextCustomQuestion) RequiredAnswerMode() AnswerMode { return AnswerModeSingleRight }

// ImageCustomQuestion - то же, что TextCustomQuestion, но варианты являются
// относительными путями к изображениям
type ImageCustomQuestion struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Text       string      `gorm:"column:question;not null" json:"question"`
	Choices    StringArray `gorm:"type:jsonb;not null" json:"choices"`
	Answers    StringArray `gorm:"type:jsonb;not null" json:"answers"`
	Difficulty Difficulty  `gorm:"size:100;not null;index" json:"difficulty_level"`
	CategoryID uint        `gorm:"not null;index" json:"category_id"`
	Category   *Category   `json:"category,omitempty"`
	Active     bool        `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (ImageCustomQuestion) TableName() string {
	return "image_custom_questions"
}

func (q *ImageCustomQuestion) Source() QuestionSource         { return SourceImageCustom }
func (q *ImageCustomQuestion) QuestionCategory() *Category    { return q.Category }
func (q *ImageCustomQuestion) QuestionDifficulty() Difficulty { return q.Difficulty }
func (q *ImageCustomQuestion) RequiredAnswerMode() AnswerMode { return AnswerModeSingleRight }
