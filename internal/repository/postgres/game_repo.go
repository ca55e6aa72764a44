package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// GameRepo реализует repository.GameRepository
type GameRepo struct {
	db *gorm.DB
}

// NewGameRepo создает новый репозиторий игр
func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

// Create создает новую игру
func (r *GameRepo) Create(game *entity.Game) error {
	return r.db.Create(game).Error
}

// Update обновляет игру
func (r *GameRepo) Update(game *entity.Game) error {
	return r.db.Save(game).Error
}

// GetByID возвращает игру по ID
func (r *GameRepo) GetByID(id uint) (*entity.Game, error) {
	var game entity.Game
	err := r.db.First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// GetActiveByUser возвращает незавершённую игру пользователя или ErrNotFound
func (r *GameRepo) GetActiveByUser(userID uint) (*entity.Game, error) {
	var game entity.Game
	err := r.db.Where("user_id = ? AND finished = ?", userID, false).
		Order("id DESC").First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// AbandonActiveByUser помечает незавершённые игры пользователя как брошенные
func (r *GameRepo) AbandonActiveByUser(userID uint, endedAt time.Time) error {
	return r.db.Model(&entity.Game{}).
		Where("user_id = ? AND finished = ?", userID, false).
		Updates(map[string]interface{}{
			"finished":  true,
			"completed": false,
			"end_time":  endedAt,
		}).Error
}

// GetPendingQuestion возвращает неотвеченный вопрос игры или ErrNotFound
func (r *GameRepo) GetPendingQuestion(gameID uint) (*entity.GameQuestion, error) {
	var question entity.GameQuestion
	err := r.db.Preload("QuestionHistory").Preload("GameMode").
		Where("game_id = ? AND answered = ?", gameID, false).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetAnsweredQuestions возвращает отвеченные вопросы игры с историей
func (r *GameRepo) GetAnsweredQuestions(gameID uint) ([]entity.GameQuestion, error) {
	var questions []entity.GameQuestion
	err := r.db.Preload("QuestionHistory").
		Where("game_id = ? AND answered = ?", gameID, true).
		Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetGameQuestions возвращает все вопросы игры с историей, по порядку создания
func (r *GameRepo) GetGameQuestions(gameID uint) ([]entity.GameQuestion, error) {
	var questions []entity.GameQuestion
	err := r.db.Preload("QuestionHistory").Preload("GameMode").
		Where("game_id = ?", gameID).
		Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// CreateQuestionHistory создает снимок сгенерированного вопроса
func (r *GameRepo) CreateQuestionHistory(history *entity.QuestionHistory) error {
	return r.db.Create(history).Error
}

// CreateGameQuestion создает вопрос игры
func (r *GameRepo) CreateGameQuestion(question *entity.GameQuestion) error {
	return r.db.Create(question).Error
}

// UpdateGameQuestion обновляет вопрос игры
func (r *GameRepo) UpdateGameQuestion(question *entity.GameQuestion) error {
	return r.db.Save(question).Error
}

// BestCompletedScores возвращает лучший результат каждого пользователя среди
// завершённых игр. Порядок детерминирован: по убыванию результата, при
// равенстве - по возрастанию ID пользователя.
func (r *GameRepo) BestCompletedScores() ([]repository.UserBestScore, error) {
	var scores []repository.UserBestScore
	err := r.db.Model(&entity.Game{}).
		Select("user_id, MAX(score) AS score").
		Where("finished = ? AND completed = ?", true, true).
		Group("user_id").
		Order("score DESC, user_id ASC").
		Scan(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}
