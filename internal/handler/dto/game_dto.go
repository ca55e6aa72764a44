package dto

import (
	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/service/generator"
)

// AnswerRequest - ответ игрока на ожидающий вопрос
type AnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// QuestionResponse - вопрос в том виде, в котором его видит игрок.
// Правильный ответ не включается.
type QuestionResponse struct {
	GenerationID string                `json:"generation_id"`
	Source       entity.QuestionSource `json:"question_mode"`
	Category     string                `json:"question_category"`
	Rendered     string                `json:"rendered_question"`
	GameMode     string                `json:"game_mode"`
	Choices      []string              `json:"choices"`
	ChoicesType  string                `json:"choices_type"`
	Difficulty   entity.Difficulty     `json:"difficulty_level"`
}

// NewQuestionResponse строит игровое представление сгенерированного вопроса
func NewQuestionResponse(q *generator.RenderedQuestion) QuestionResponse {
	return QuestionResponse{
		GenerationID: q.GenerationID,
		Source:       q.Source,
		Category:     q.Category,
		Rendered:     q.Rendered,
		GameMode:     q.GameMode,
		Choices:      q.Choices,
		ChoicesType:  q.ChoicesType,
		Difficulty:   q.Difficulty,
	}
}

// GameQuestionResponse - строка истории вопросов игры
type GameQuestionResponse struct {
	ID         uint                  `json:"id"`
	Source     entity.QuestionSource `json:"question_mode"`
	Question   string                `json:"question"`
	Difficulty entity.Difficulty     `json:"difficulty_level"`
	Choices    []string              `json:"choices"`
	Answer     string                `json:"answer"`
	Selected   string                `json:"selected"`
	Answered   bool                  `json:"answered"`
	IsTrue     bool                  `json:"is_true"`
	GameMode   string                `json:"game_mode,omitempty"`
}

// NewGameQuestionResponse строит строку истории из вопроса игры
func NewGameQuestionResponse(gq *entity.GameQuestion) GameQuestionResponse {
	resp := GameQuestionResponse{
		ID:       gq.ID,
		Selected: gq.Selected,
		Answered: gq.Answered,
		IsTrue:   gq.IsTrue,
	}
	if gq.QuestionHistory != nil {
		resp.Source = gq.QuestionHistory.Source
		resp.Question = gq.QuestionHistory.Question
		resp.Difficulty = gq.QuestionHistory.Difficulty
		resp.Choices = gq.QuestionHistory.Choices
		// Ответ раскрывается только после того, как вопрос отвечен
		if gq.Answered {
			resp.Answer = gq.QuestionHistory.Answer
		}
	}
	if gq.GameMode != nil {
		resp.GameMode = gq.GameMode.Name
	}
	return resp
}

// AnswerResponse - итог проверки ответа
type AnswerResponse struct {
	Correct      bool         `json:"correct"`
	Answer       string       `json:"answer"`
	Score        int          `json:"score"`
	WrongAnswers int          `json:"wrong_answers"`
	GameOver     bool         `json:"game_over"`
	Game         *entity.Game `json:"game,omitempty"`
}
