package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkwell-blog/inkwell/internal/api"
	"github.com/inkwell-blog/inkwell/internal/infrastructure/config"
	mongoinfra "github.com/inkwell-blog/inkwell/internal/infrastructure/db/mongo"
	redisinfra "github.com/inkwell-blog/inkwell/internal/infrastructure/db/redis"
	"github.com/inkwell-blog/inkwell/internal/infrastructure/mail"
	s3infra "github.com/inkwell-blog/inkwell/internal/infrastructure/storage/s3"
	"github.com/inkwell-blog/inkwell/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongoinfra.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	blogRepo := mongoinfra.NewBlogRepository(db)
	if err := blogRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("blog index creation failed")
	}

	// --- Redis ---
	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Asset host ---
	uploader, err := s3infra.NewUploader(ctx, s3infra.Config{
		Region:        cfg.S3.Region,
		Bucket:        cfg.S3.Bucket,
		AccessKey:     cfg.S3.AccessKey,
		SecretKey:     cfg.S3.SecretKey,
		Endpoint:      cfg.S3.Endpoint,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("asset host setup failed")
	}

	// --- Mail queue ---
	mailer, err := mail.NewPublisher(cfg.Mail.AMQPURL, cfg.Mail.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("mail queue connection failed")
	}
	defer mailer.Close()

	e := api.NewRouter(cfg, db, rdb, uploader, mailer, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
