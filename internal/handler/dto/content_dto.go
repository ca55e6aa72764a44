package dto

// CreateCategoryRequest - запрос на создание категории
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CreateGameModeRequest - запрос на создание игрового режима
type CreateGameModeRequest struct {
	Name             string   `json:"name" binding:"required,max=100"`
	AllowAnswerModes []string `json:"allow_answer_modes" binding:"required,min=1"`
}

// CreateSeededQuestionRequest - запрос на создание шаблонного вопроса
type CreateSeededQuestionRequest struct {
	MainClassID      uint   `json:"main_class_id" binding:"required"`
	Question         string `json:"question" binding:"required"`
	AnswerPropertyID uint   `json:"answer_property_id" binding:"required"`
	AnswerMode       string `json:"answer_mode" binding:"required"`
	Difficulty       string `json:"difficulty_level" binding:"required"`
	CategoryID       uint   `json:"category_id" binding:"required"`
}

// CreateCustomQuestionRequest - запрос на создание кастомного вопроса
// (текстового или картиночного)
type CreateCustomQuestionRequest struct {
	Question   string   `json:"question" binding:"required"`
	Choices    []string `json:"choices" binding:"required"`
	Answers    []string `json:"answers" binding:"required"`
	Difficulty string   `json:"difficulty_level" binding:"required"`
	CategoryID uint     `json:"category_id" binding:"required"`
}
