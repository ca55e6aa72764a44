// genquestion - консольная утилита для ручной проверки генерации вопросов:
// подключается к базе, генерирует один вопрос и печатает его JSON в stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yourusername/quizgen-api/internal/config"
	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/kb"
	pgRepo "github.com/yourusername/quizgen-api/internal/repository/postgres"
	"github.com/yourusername/quizgen-api/internal/service/generator"
	"github.com/yourusername/quizgen-api/pkg/database"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
		source     = flag.String("source", "", "принудительный источник вопроса (seed_question|text_custom_question|image_custom_question)")
		questionID = flag.Uint("question-id", 0, "принудительный ID вопроса в выбранном источнике")
		userID     = flag.Uint("user", 0, "ID пользователя (0 - анонимная генерация)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	kbClient := kb.NewClient(
		cfg.KnowledgeBase.BaseURL,
		time.Duration(cfg.KnowledgeBase.TimeoutSec)*time.Second,
		nil, // кеш не нужен для одиночной генерации
	)

	gen := generator.New(
		generator.Config{
			NumChoices:     cfg.Game.NumChoices,
			MaxAttempts:    cfg.Game.MaxAttempts,
			MediaBaseURL:   cfg.Media.BaseURL,
			KBMediaBaseURL: cfg.KnowledgeBase.MediaBaseURL,
		},
		pgRepo.NewCategoryRepo(db),
		pgRepo.NewQuestionRepo(db),
		pgRepo.NewGameModeRepo(db),
		pgRepo.NewWeightRepo(db),
		kbClient,
	)

	req := generator.Request{
		Source:     entity.QuestionSource(*source),
		QuestionID: *questionID,
	}
	if *userID != 0 {
		id := *userID
		req.UserID = &id
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rendered, err := gen.Generate(ctx, req)
	if err != nil {
		log.Printf("Generation failed: %v", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(rendered, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal question: %v", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
