package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goaltracker/internal/application/usecase"
	"goaltracker/internal/config"
	"goaltracker/internal/domain"
	"goaltracker/internal/infrastructure/repository"
	"goaltracker/internal/infrastructure/security"
	"goaltracker/internal/middleware"
	handlers "goaltracker/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger := newLogger(cfg.LogMode)
	defer logger.Sync()
	log := logger.Sugar()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalw("failed to connect to db", "error", err)
	}
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Goal{},
		&domain.Chapter{},
		&domain.Lesson{},
		&domain.Task{},
		&domain.SubTask{},
	)
	if err != nil {
		log.Fatalw("failed to migrate db", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}

	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	hasher := security.NewPasswordHasher()
	tokens := security.NewTokenManager(cfg.JWTSecret)
	limiter := middleware.NewRateLimiter(rdb)

	authUseCase := usecase.NewAuthUseCase(userRepo, hasher, tokens)
	goalUseCase := usecase.NewGoalUseCase(goalRepo, log)
	taskUseCase := usecase.NewTaskUseCase(taskRepo, goalUseCase, log)

	router := handlers.NewRouter(
		cfg.AllowedOrigins,
		tokens,
		limiter,
		handlers.NewAuthHandler(authUseCase),
		handlers.NewGoalHandler(goalUseCase),
		handlers.NewTaskHandler(taskUseCase),
	)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infow("server listening", "addr", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to serve", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Infow("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}
}

func newLogger(mode string) *zap.Logger {
	var logger *zap.Logger
	var err error
	switch mode {
	case "prod", "production":
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	return logger
}
