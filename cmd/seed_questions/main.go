package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"pokesoul/internal/config"
	"pokesoul/internal/database"
	"pokesoul/internal/domain"
	"pokesoul/internal/logger"
	"pokesoul/internal/repository"
	"pokesoul/internal/util"

	"go.uber.org/zap"
)

// seedQuestion mirrors one entry of the question set file. Option values are
// kept as raw JSON so the file can carry any tag combination.
type seedQuestion struct {
	Identifier string       `json:"identifier"`
	Text       string       `json:"text"`
	Options    []seedOption `json:"options"`
}

type seedOption struct {
	Text  string          `json:"text"`
	Value json.RawMessage `json:"value"`
}

func main() {
	seedFilePath := flag.String("file", "data/question_set.json", "path to the question set file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	appLogger.Info("Starting question seeding", zap.String("file", *seedFilePath))

	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		appLogger.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var seedQuestions []seedQuestion
	if err := json.Unmarshal(byteValue, &seedQuestions); err != nil {
		appLogger.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	questions := repository.NewQuestionDatabaseAdapter(db)
	created, skipped := 0, 0
	for _, sq := range seedQuestions {
		wasCreated, err := seedOne(ctx, questions, sq)
		if err != nil {
			appLogger.Fatal("Failed to seed question",
				zap.String("identifier", sq.Identifier), zap.Error(err))
		}
		if wasCreated {
			created++
		} else {
			skipped++
		}
	}

	appLogger.Info("Question seeding completed",
		zap.Int("created", created),
		zap.Int("skipped_existing", skipped),
	)
}

// seedOne creates a question with its options unless the identifier already
// exists, which makes reruns safe.
func seedOne(ctx context.Context, questions domain.QuestionRepository, sq seedQuestion) (bool, error) {
	existing, err := questions.GetQuestionByIdentifier(ctx, sq.Identifier)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	question := domain.NewQuestion(sq.Identifier, sq.Text)
	question.ID = util.NewULID()
	if err := question.Validate(); err != nil {
		return false, err
	}
	if err := questions.SaveQuestion(ctx, question); err != nil {
		return false, err
	}

	for _, so := range sq.Options {
		option := &domain.AnswerOption{
			ID:         util.NewULID(),
			QuestionID: question.ID,
			Text:       so.Text,
			Value:      string(so.Value),
		}
		if err := questions.SaveOption(ctx, option); err != nil {
			return false, err
		}
	}

	log.Printf("Seeded question %q with %d options", sq.Identifier, len(sq.Options))
	return true, nil
}
