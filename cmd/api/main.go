package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgen-api/internal/config"
	"github.com/yourusername/quizgen-api/internal/handler"
	"github.com/yourusername/quizgen-api/internal/kb"
	"github.com/yourusername/quizgen-api/internal/middleware"
	pgRepo "github.com/yourusername/quizgen-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizgen-api/internal/repository/redis"
	"github.com/yourusername/quizgen-api/internal/service"
	"github.com/yourusername/quizgen-api/internal/service/generator"
	"github.com/yourusername/quizgen-api/pkg/auth"
	"github.com/yourusername/quizgen-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	gameModeRepo := pgRepo.NewGameModeRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	weightRepo := pgRepo.NewWeightRepo(db)
	gameRepo := pgRepo.NewGameRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Клиент базы знаний
	kbClient := kb.NewClient(
		cfg.KnowledgeBase.BaseURL,
		time.Duration(cfg.KnowledgeBase.TimeoutSec)*time.Second,
		cacheRepo,
	)

	// Генератор вопросов
	gen := generator.New(
		generator.Config{
			NumChoices:     cfg.Game.NumChoices,
			MaxAttempts:    cfg.Game.MaxAttempts,
			MediaBaseURL:   cfg.Media.BaseURL,
			KBMediaBaseURL: cfg.KnowledgeBase.MediaBaseURL,
		},
		categoryRepo, questionRepo, gameModeRepo, weightRepo, kbClient,
	)

	// Инициализируем JWT-сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWT service: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cfg.Media.BaseURL)
	leaderboardService := service.NewLeaderboardService(gameRepo, userRepo, cacheRepo)
	gameService := service.NewGameService(gameRepo, weightRepo, gen, leaderboardService)
	questionService := service.NewQuestionService(gen)
	contentService := service.NewContentService(categoryRepo, gameModeRepo, questionRepo, weightRepo)

	// Шаг начальной загрузки: досоздаём недостающие веса
	if err := contentService.BackfillWeights(); err != nil {
		log.Printf("Weight backfill on startup failed: %v", err)
	}

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, leaderboardService)
	questionHandler := handler.NewQuestionHandler(questionService)
	gameHandler := handler.NewGameHandler(gameService)
	contentHandler := handler.NewContentHandler(contentService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Инициализируем роутер Gin
	router := gin.Default()

	if gin.Mode() == gin.ReleaseMode {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Пробный вопрос доступен и анониму
		api.GET("/random_question", authMiddleware.OptionalAuth(), questionHandler.RandomQuestion)

		api.GET("/categories", contentHandler.GetCategories)
		api.GET("/leaderboard", userHandler.GetLeaderboard)

		authed := api.Group("/")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.GET("/users/me", userHandler.Me)

			games := authed.Group("/games")
			{
				games.POST("", gameHandler.Start)
				games.POST("/question", gameHandler.NextQuestion)
				games.POST("/answer", gameHandler.Answer)
				games.POST("/end", gameHandler.End)
				games.GET("/:id", gameHandler.GetGame)
				games.GET("/:id/questions", gameHandler.GetHistory)
				games.GET("/:id/export", gameHandler.Export)
			}
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.POST("/categories", contentHandler.CreateCategory)
			admin.POST("/game-modes", contentHandler.CreateGameMode)
			admin.POST("/questions/seeded", contentHandler.CreateSeededQuestion)
			admin.POST("/questions/text", contentHandler.CreateTextQuestion)
			admin.POST("/questions/image", contentHandler.CreateImageQuestion)
			admin.POST("/weights/backfill", contentHandler.BackfillWeights)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
