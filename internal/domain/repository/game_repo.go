package repository

import (
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// UserBestScore - лучший результат пользователя среди его завершённых игр
type UserBestScore struct {
	UserID uint `json:"user_id"`
	Score  int  `json:"score"`
}

// GameRepository определяет методы для работы с играми и их вопросами
type GameRepository interface {
	Create(game *entity.Game) error
	Update(game *entity.Game) error
	GetByID(id uint) (*entity.Game, error)

	// GetActiveByUser возвращает незавершённую игру пользователя
	// или ErrNotFound
	GetActiveByUser(userID uint) (*entity.Game, error)

	// AbandonActiveByUser помечает все незавершённые игры пользователя как
	// брошенные (finished=true, completed=false)
	AbandonActiveByUser(userID uint, endedAt time.Time) error

	// GetPendingQuestion возвращает неотвеченный вопрос игры (с историей)
	// или ErrNotFound
	GetPendingQuestion(gameID uint) (*entity.GameQuestion, error)

	// GetAnsweredQuestions возвращает отвеченные вопросы игры с историей
	GetAnsweredQuestions(gameID uint) ([]entity.GameQuestion, error)

	// GetGameQuestions возвращает все вопросы игры с историей, по порядку
	GetGameQuestions(gameID uint) ([]entity.GameQuestion, error)

	CreateQuestionHistory(history *entity.QuestionHistory) error
	CreateGameQuestion(question *entity.GameQuestion) error
	UpdateGameQuestion(question *entity.GameQuestion) error

	// BestCompletedScores возвращает лучший результат каждого пользователя
	// среди завершённых игр, по убыванию результата; при равенстве -
	// по возрастанию ID пользователя
	BestCompletedScores() ([]UserBestScore, error)
}
