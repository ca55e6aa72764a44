package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/handler/dto"
	"github.com/yourusername/quizgen-api/internal/middleware"
	"github.com/yourusername/quizgen-api/internal/service"
)

// GameHandler обрабатывает жизненный цикл игровой сессии
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler создает новый обработчик игр
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) requireUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// Start начинает новую игру, принудительно завершая предыдущую
func (h *GameHandler) Start(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	game, err := h.gameService.StartGame(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// NextQuestion генерирует следующий вопрос активной игры
func (h *GameHandler) NextQuestion(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	rendered, err := h.gameService.NextQuestion(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(rendered))
}

// Answer принимает ответ на ожидающий вопрос
func (h *GameHandler) Answer(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	result, err := h.gameService.Answer(c.Request.Context(), userID, req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AnswerResponse{
		Correct:      result.Correct,
		Answer:       result.Answer,
		Score:        result.Score,
		WrongAnswers: result.WrongAnswers,
		GameOver:     result.GameOver,
		Game:         result.Game,
	})
}

// End явно завершает активную игру
func (h *GameHandler) End(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	game, err := h.gameService.EndGame(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetGame возвращает игру по ID
func (h *GameHandler) GetGame(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID", "error_type": "validation"})
		return
	}

	game, err := h.gameService.GetGameForUser(userID, uint(gameID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetHistory возвращает вопросы игры по порядку
func (h *GameHandler) GetHistory(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID", "error_type": "validation"})
		return
	}

	game, questions, err := h.gameService.GetGameQuestions(userID, uint(gameID))
	if err != nil {
		respondError(c, err)
		return
	}

	history := make([]dto.GameQuestionResponse, 0, len(questions))
	for i := range questions {
		history = append(history, dto.NewGameQuestionResponse(&questions[i]))
	}
	c.JSON(http.StatusOK, gin.H{"game": game, "questions": history})
}

// Export выгружает историю игры в CSV или XLSX
func (h *GameHandler) Export(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID", "error_type": "validation"})
		return
	}

	game, questions, err := h.gameService.GetGameQuestions(userID, uint(gameID))
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("game_%d_%s", game.ID, time.Now().Format("2006-01-02"))
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		h.exportXLSX(c, game, questions, filename)
	default:
		h.exportCSV(c, game, questions, filename)
	}
}

func exportRow(gq *entity.GameQuestion) (question, difficulty, answer, selected, correct string) {
	correct = "Нет"
	if gq.IsTrue {
		correct = "Да"
	}
	selected = gq.Selected
	if gq.QuestionHistory != nil {
		question = gq.QuestionHistory.Question
		difficulty = string(gq.QuestionHistory.Difficulty)
		answer = gq.QuestionHistory.Answer
	}
	return
}

// exportCSV выгружает историю игры в CSV с корректным экранированием
func (h *GameHandler) exportCSV(c *gin.Context, game *entity.Game, questions []entity.GameQuestion, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Номер", "Вопрос", "Сложность", "Правильный ответ", "Выбранный ответ", "Верно"})
	for i := range questions {
		question, difficulty, answer, selected, correct := exportRow(&questions[i])
		writer.Write([]string{
			strconv.Itoa(i + 1),
			sanitizeForExcel(question),
			difficulty,
			sanitizeForExcel(answer),
			sanitizeForExcel(selected),
			correct,
		})
	}
	writer.Write([]string{"", "", "", "", "Итого очков", strconv.Itoa(game.Score)})
}

// exportXLSX выгружает историю игры в Excel через StreamWriter
func (h *GameHandler) exportXLSX(c *gin.Context, game *entity.Game, questions []entity.GameQuestion, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "История игры"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[GameHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Номер", "Вопрос", "Сложность", "Правильный ответ", "Выбранный ответ", "Верно"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[GameHandler] Ошибка записи заголовков: %v", err)
	}

	for i := range questions {
		question, difficulty, answer, selected, correct := exportRow(&questions[i])
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{i + 1, sanitizeForExcel(question), difficulty, sanitizeForExcel(answer), sanitizeForExcel(selected), correct}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[GameHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	totalCell := fmt.Sprintf("A%d", len(questions)+2)
	if err := sw.SetRow(totalCell, []interface{}{"", "", "", "", "Итого очков", game.Score}); err != nil {
		log.Printf("[GameHandler] Ошибка записи итога: %v", err)
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[GameHandler] Ошибка при Flush: %v", err)
	}
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[GameHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
