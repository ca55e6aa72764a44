package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
	"github.com/yourusername/quizgen-api/internal/service/generator"
)

// QuestionGenerator - то, что машине состояний нужно от генератора вопросов
type QuestionGenerator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.RenderedQuestion, error)
}

// Ranker - то, что машине состояний нужно от лидерборда
type Ranker interface {
	RankOf(userID uint) (int, error)
	Invalidate() error
}

// AnswerResult - итог проверки ответа
type AnswerResult struct {
	Correct      bool         `json:"correct"`
	Answer       string       `json:"answer"`
	Score        int          `json:"score"`
	WrongAnswers int          `json:"wrong_answers"`
	GameOver     bool         `json:"game_over"`
	Game         *entity.Game `json:"game,omitempty"`
}

// Проигрыш наступает на третьем неверном ответе
const maxWrongAnswers = 3

// GameService реализует машину состояний игровой сессии:
// старт -> вопрос -> ответ -> ... -> завершение (естественное, явное или
// вытеснение новой игрой).
//
// Операции одного пользователя сериализуются per-user мьютексом: между
// проверкой состояния игры и записью не должно вклиниваться конкурентное
// изменение того же пользователя.
type GameService struct {
	gameRepo   repository.GameRepository
	weightRepo repository.WeightRepository
	gen        QuestionGenerator
	ranker     Ranker

	userLocks sync.Map // map[uint]*sync.Mutex
}

// NewGameService создает новый сервис игровых сессий
func NewGameService(
	gameRepo repository.GameRepository,
	weightRepo repository.WeightRepository,
	gen QuestionGenerator,
	ranker Ranker,
) *GameService {
	return &GameService{
		gameRepo:   gameRepo,
		weightRepo: weightRepo,
		gen:        gen,
		ranker:     ranker,
	}
}

func (s *GameService) lockUser(userID uint) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// StartGame создает новую активную игру. Любая прежняя незавершённая игра
// пользователя принудительно завершается как брошенная.
func (s *GameService) StartGame(ctx context.Context, userID uint) (*entity.Game, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	if err := s.gameRepo.AbandonActiveByUser(userID, time.Now()); err != nil {
		return nil, err
	}

	game := &entity.Game{
		UserID:  userID,
		Weights: entity.WeightMap{},
	}
	if err := s.gameRepo.Create(game); err != nil {
		return nil, err
	}
	log.Printf("[GameService] Пользователь %d начал игру %d", userID, game.ID)
	return game, nil
}

// NextQuestion генерирует следующий вопрос активной игры. Эффективный вес
// для подбора - исторические веса плюс дельты уже отвеченных вопросов этой
// сессии. Снимок вопроса и строка GameQuestion создаются только при
// успешной генерации.
func (s *GameService) NextQuestion(ctx context.Context, userID uint) (*generator.RenderedQuestion, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	game, err := s.activeGame(userID)
	if err != nil {
		return nil, err
	}

	_, err = s.gameRepo.GetPendingQuestion(game.ID)
	if err == nil {
		return nil, ErrQuestionAlreadyPending
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	deltas, _, err := s.sessionDeltas(game.ID)
	if err != nil {
		return nil, err
	}
	effective, err := s.weightRepo.AggregateSession(userID, deltas)
	if err != nil {
		return nil, err
	}

	rendered, err := s.gen.Generate(ctx, generator.Request{
		UserID:       &userID,
		CustomWeight: effective,
	})
	if err != nil {
		return nil, err
	}

	history := &entity.QuestionHistory{
		Source:      rendered.Source,
		CategoryID:  rendered.CategoryID,
		Difficulty:  rendered.Difficulty,
		Question:    rendered.Rendered,
		Choices:     rendered.Choices,
		Answer:      rendered.Answer,
		Type:        rendered.Type,
		FullPayload: renderedPayload(rendered),
	}
	if err := s.gameRepo.CreateQuestionHistory(history); err != nil {
		return nil, err
	}

	gameQuestion := &entity.GameQuestion{
		GameID:            game.ID,
		QuestionHistoryID: history.ID,
		GameModeID:        rendered.GameModeID,
	}
	if err := s.gameRepo.CreateGameQuestion(gameQuestion); err != nil {
		return nil, err
	}
	return rendered, nil
}

// Answer проверяет ответ на ожидающий вопрос, пересчитывает счёт и веса
// сессии и проверяет условие проигрыша
func (s *GameService) Answer(ctx context.Context, userID uint, submitted string) (*AnswerResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	game, err := s.activeGame(userID)
	if err != nil {
		return nil, err
	}

	pending, err := s.gameRepo.GetPendingQuestion(game.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoQuestionPending
		}
		return nil, err
	}
	if pending.QuestionHistory == nil {
		return nil, errors.New("pending question has no history snapshot")
	}

	// Сравнение строгое: для кастомных вопросов с несколькими допустимыми
	// ответами сравнивается именно значение, выбранное при генерации
	correct := submitted == pending.QuestionHistory.Answer

	pending.Answered = true
	pending.IsTrue = correct
	pending.Selected = submitted
	if err := s.gameRepo.UpdateGameQuestion(pending); err != nil {
		return nil, err
	}

	deltas, tally, err := s.sessionDeltas(game.ID)
	if err != nil {
		return nil, err
	}
	effective, err := s.weightRepo.AggregateSession(userID, deltas)
	if err != nil {
		return nil, err
	}
	game.Score = tally.score
	game.Weights = entity.WeightMap(effective)

	result := &AnswerResult{
		Correct:      correct,
		Answer:       pending.QuestionHistory.Answer,
		Score:        game.Score,
		WrongAnswers: tally.wrong,
	}

	if tally.wrong >= maxWrongAnswers {
		if err := s.finish(game); err != nil {
			return nil, err
		}
		result.GameOver = true
	} else {
		if err := s.gameRepo.Update(game); err != nil {
			return nil, err
		}
	}
	result.Game = game
	return result, nil
}

// EndGame явно завершает активную игру, фиксируя веса и ранги
func (s *GameService) EndGame(ctx context.Context, userID uint) (*entity.Game, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	game, err := s.activeGame(userID)
	if err != nil {
		return nil, err
	}
	if err := s.finish(game); err != nil {
		return nil, err
	}
	return game, nil
}

// GetGameForUser возвращает игру по ID с проверкой владельца
func (s *GameService) GetGameForUser(userID, gameID uint) (*entity.Game, error) {
	game, err := s.gameRepo.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return game, nil
}

// GetGameQuestions возвращает вопросы игры по порядку с проверкой владельца
func (s *GameService) GetGameQuestions(userID, gameID uint) (*entity.Game, []entity.GameQuestion, error) {
	game, err := s.GetGameForUser(userID, gameID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.gameRepo.GetGameQuestions(gameID)
	if err != nil {
		return nil, nil, err
	}
	return game, questions, nil
}

func (s *GameService) activeGame(userID uint) (*entity.Game, error) {
	game, err := s.gameRepo.GetActiveByUser(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNoActiveGame
		}
		return nil, err
	}
	return game, nil
}

type sessionTally struct {
	score int
	wrong int
}

// sessionDeltas пересчитывает дельты весов по категориям, счёт и количество
// неверных ответов по всем отвеченным вопросам игры
func (s *GameService) sessionDeltas(gameID uint) (map[uint]float64, sessionTally, error) {
	answered, err := s.gameRepo.GetAnsweredQuestions(gameID)
	if err != nil {
		return nil, sessionTally{}, err
	}

	deltas := make(map[uint]float64)
	var tally sessionTally
	for _, gq := range answered {
		if gq.QuestionHistory == nil {
			continue
		}
		difficulty := gq.QuestionHistory.Difficulty
		deltas[gq.QuestionHistory.CategoryID] += difficulty.WeightDelta(gq.IsTrue)
		if gq.IsTrue {
			tally.score += difficulty.Score()
		} else {
			tally.wrong++
		}
	}
	return deltas, tally, nil
}

// finish переводит игру в терминальное состояние Finished/Completed:
// ранг до завершения читается до записи флагов, веса сессии фиксируются
// в хранилище, кеш лидерборда сбрасывается, ранг после - строго после
// записи результата
func (s *GameService) finish(game *entity.Game) error {
	rankBefore, err := s.ranker.RankOf(game.UserID)
	if err != nil {
		return err
	}

	now := time.Now()
	game.EndTime = &now
	game.Finished = true
	game.Completed = true
	game.RankBefore = rankBefore

	for categoryID, weight := range game.Weights {
		if err := s.weightRepo.Set(game.UserID, categoryID, weight); err != nil {
			return err
		}
	}

	if err := s.gameRepo.Update(game); err != nil {
		return err
	}

	if err := s.ranker.Invalidate(); err != nil {
		log.Printf("[GameService] Не удалось сбросить кеш лидерборда: %v", err)
	}

	rankAfter, err := s.ranker.RankOf(game.UserID)
	if err != nil {
		return err
	}
	game.RankAfter = rankAfter
	if err := s.gameRepo.Update(game); err != nil {
		return err
	}

	log.Printf("[GameService] Игра %d пользователя %d завершена: счёт %d, ранг %d -> %d",
		game.ID, game.UserID, game.Score, game.RankBefore, game.RankAfter)
	return nil
}

// renderedPayload сериализует сгенерированный вопрос в JSONB-снимок
func renderedPayload(rendered *generator.RenderedQuestion) entity.JSONMap {
	payload := entity.JSONMap{}
	data, err := json.Marshal(rendered)
	if err != nil {
		return payload
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return entity.JSONMap{}
	}
	return payload
}
