package entity

import "time"

// GameQuestion связывает игру со сгенерированным вопросом.
// Инвариант: в игре не более одного неотвеченного GameQuestion; новый вопрос
// нельзя сгенерировать, пока есть ожидающий ответа.
type GameQuestion struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	GameID            uint             `gorm:"not null;index" json:"game_id"`
	QuestionHistoryID uint             `gorm:"not null" json:"question_history_id"`
	QuestionHistory   *QuestionHistory `json:"question,omitempty"`
	GameModeID        uint             `gorm:"not null" json:"game_mode_id"`
	GameMode          *GameMode        `json:"game_mode,omitempty"`
	Answered          bool             `gorm:"not null;default:false;index" json:"answered"`
	IsTrue            bool             `gorm:"not null;default:false" json:"is_true"`
	Selected          string           `gorm:"type:text;not null;default:''" json:"selected"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (GameQuestion) TableName() string {
	return "game_questions"
}
