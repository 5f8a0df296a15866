package main

import (
	"context"
	"fmt"
	"os"

	"researchpub/internal/config"
	"researchpub/internal/logging"
	"researchpub/internal/plugin"
	"researchpub/internal/publication"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load(config.FilePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	group := plugin.New(nil).FieldGroup()
	repo := publication.NewPostgresRepo(pool, cfg.DB.Timeout, group)
	service := publication.NewService(repo, publication.NewRenderer(repo, nil), group)

	people := samplePeople()
	for i := range people {
		if err := repo.SavePerson(ctx, &people[i]); err != nil {
			logger.Fatal("failed to insert person", zap.String("name", people[i].Name), zap.Error(err))
		}
	}
	logger.Info("inserted people", zap.Int("count", len(people)))

	for _, p := range samplePublications(people) {
		if err := service.Create(ctx, &p); err != nil {
			logger.Fatal("failed to insert publication", zap.String("title", p.Title), zap.Error(err))
		}
		logger.Info("inserted publication",
			zap.String("id", p.ID),
			zap.String("type", string(p.Variant)),
			zap.String("title", p.Title),
		)
	}

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM research_publications").Scan(&total); err != nil {
		logger.Fatal("failed to count publications", zap.Error(err))
	}
	logger.Info("seed finished", zap.Int("publications", total))
}
