package service

import "errors"

// Ошибки машины состояний игры
var (
	// ErrNoActiveGame - у пользователя нет незавершённой игры
	ErrNoActiveGame = errors.New("no game running")
	// ErrQuestionAlreadyPending - в игре уже есть вопрос, ожидающий ответа
	ErrQuestionAlreadyPending = errors.New("there is already a pending question")
	// ErrNoQuestionPending - в игре нет вопроса, ожидающего ответа
	ErrNoQuestionPending = errors.New("no question pending")
)
