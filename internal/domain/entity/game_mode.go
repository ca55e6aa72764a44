package entity

import "time"

// GameMode определяет режим игры и разрешённые в нём режимы ответа.
// Вопрос можно задать только в режиме, который разрешает его answer mode.
type GameMode struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Name             string      `gorm:"size:100;not null;uniqueIndex" json:"name"`
	AllowAnswerModes StringArray `gorm:"type:jsonb;not null" json:"allow_answer_modes"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (GameMode) TableName() string {
	return "game_modes"
}

// Allows проверяет, разрешён ли режим ответа в данном игровом режиме
func (m *GameMode) Allows(mode AnswerMode) bool {
	return m.AllowAnswerModes.Contains(string(mode))
}
