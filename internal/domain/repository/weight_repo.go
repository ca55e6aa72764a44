package repository

// WeightRepository - хранилище адаптивных весов (user, category) -> float.
type WeightRepository interface {
	// EnsureAndGet возвращает сохранённый вес пары (user, category).
	// Отсутствие строки не является ошибкой: строка создаётся с весом 0.0
	// и возвращается 0.0 (семантика write-on-read). Создание должно быть
	// идемпотентным при конкурентных чтениях.
	EnsureAndGet(userID, categoryID uint) (float64, error)

	// Set сохраняет вес пары (user, category), создавая строку при необходимости
	Set(userID, categoryID uint, weight float64) error

	// GetAllForUser возвращает все сохранённые веса пользователя
	GetAllForUser(userID uint) (map[uint]float64, error)

	// AggregateSession складывает дельты текущей сессии с историческими
	// весами пользователя, не изменяя хранилище. Используется посреди игры
	// для вычисления эффективного веса до его фиксации при завершении.
	AggregateSession(userID uint, deltas map[uint]float64) (map[uint]float64, error)

	// Backfill идемпотентно создаёт недостающие строки с весом 0.0 для всех
	// пар (пользователь, категория). Вызывается при создании новой категории
	// и как шаг начальной загрузки.
	Backfill() error
}
