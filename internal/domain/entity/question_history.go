package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONMap - произвольный JSON-объект для хранения в JSONB
type JSONMap map[string]interface{}

// Scan реализует интерфейс sql.Scanner для JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*m = JSONMap{}
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value реализует интерфейс driver.Valuer для JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// QuestionHistory - денормализованный снимок сгенерированного вопроса.
// Создаётся один раз на генерацию, чтобы проверка ответа и просмотр истории
// не требовали повторного запуска генератора.
// Это журнал проведения, а не справочник вопросов.
type QuestionHistory struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Source      QuestionSource `gorm:"column:question_mode;size:100;not null" json:"question_mode"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	Category    *Category      `json:"category,omitempty"`
	Difficulty  Difficulty     `gorm:"size:100;not null" json:"difficulty_level"`
	Question    string         `gorm:"type:text;not null" json:"question"`
	Choices     StringArray    `gorm:"type:jsonb;not null" json:"choices"`
	Answer      string         `gorm:"type:text;not null" json:"answer"`
	Type        string         `gorm:"size:100;not null" json:"type"`
	FullPayload JSONMap        `gorm:"type:jsonb;not null;default:'{}'" json:"full_payload"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (QuestionHistory) TableName() string {
	return "question_history"
}
