package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// WeightMap - карта "ID категории -> вес" для хранения в JSONB
type WeightMap map[uint]float64

// Scan реализует интерфейс sql.Scanner для WeightMap
func (w *WeightMap) Scan(value interface{}) error {
	if value == nil {
		*w = WeightMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*w = WeightMap{}
		return nil
	}

	return json.Unmarshal(bytes, w)
}

// Value реализует интерфейс driver.Valuer для WeightMap
func (w WeightMap) Value() (driver.Value, error) {
	if w == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(w)
}

// Game представляет одну игровую сессию пользователя.
//
// Инвариант: у пользователя не более одной незавершённой игры; старт новой
// игры принудительно завершает предыдущую как брошенную
// (finished=true, completed=false).
//
// Weights хранит эффективные веса сессии: исторические веса из хранилища
// плюс накопленные дельты за ответы этой игры. При завершении игры эти
// значения фиксируются в хранилище весов.
type Game struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	StartTime  time.Time  `gorm:"not null;autoCreateTime" json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Score      int        `gorm:"not null;default:0" json:"score"`
	Weights    WeightMap  `gorm:"type:jsonb;not null;default:'{}'" json:"weights"`
	Finished   bool       `gorm:"not null;default:false;index" json:"finished"`
	Completed  bool       `gorm:"not null;default:false" json:"completed"`
	RankBefore int        `gorm:"not null;default:0" json:"rank_before"`
	RankAfter  int        `gorm:"not null;default:0" json:"rank_after"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Game) TableName() string {
	return "games"
}

// Active возвращает true, пока игра не завершена
func (g *Game) Active() bool {
	return !g.Finished
}
