package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/inteleval.net/internal/adapter/crypto"
	"gitlab.com/inteleval.net/internal/adapter/judge0"
	"gitlab.com/inteleval.net/internal/adapter/openai"
	"gitlab.com/inteleval.net/internal/adapter/postgres/achievementrepository"
	"gitlab.com/inteleval.net/internal/adapter/postgres/feedbackrepository"
	"gitlab.com/inteleval.net/internal/adapter/postgres/notificationrepository"
	"gitlab.com/inteleval.net/internal/adapter/postgres/profilerepository"
	"gitlab.com/inteleval.net/internal/adapter/postgres/rankingrepository"
	"gitlab.com/inteleval.net/internal/adapter/redis/realtimeport"
	"gitlab.com/inteleval.net/internal/config"
	"gitlab.com/inteleval.net/internal/core/services/achievement"
	auth2 "gitlab.com/inteleval.net/internal/core/services/auth"
	"gitlab.com/inteleval.net/internal/core/services/feedback"
	"gitlab.com/inteleval.net/internal/core/services/grading"
	"gitlab.com/inteleval.net/internal/core/services/judging"
	"gitlab.com/inteleval.net/internal/core/services/notification"
	"gitlab.com/inteleval.net/internal/core/services/ranking"
	"gitlab.com/inteleval.net/internal/core/services/realtime"
	logger2 "gitlab.com/inteleval.net/internal/global/logger"
	http2 "gitlab.com/inteleval.net/internal/http"
)

func main() {
	InitReader()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting inteleval service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	schema := sysCfg.PostgresConfig.Schema
	profilePort := profilerepository.New(db, logger, schema)
	feedbackRepo := feedbackrepository.New(db, logger, schema)
	notificationRepo := notificationrepository.New(db, logger, schema)
	rankingRepo := rankingrepository.New(db, logger, schema)
	achievementRepo := achievementrepository.New(db, logger, schema)
	realtimePort := realtimeport.NewRealtimePort(redisClient, logger)
	leaderboardCache := realtimeport.NewLeaderboardCache(redisClient, logger)
	judgeClient := judge0.NewClient(sysCfg.JudgeConfig, logger)
	evalClient := openai.NewClient(sysCfg.EvalConfig, logger)

	// PRIMARY PORTS
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// SERVICES
	judgingSvc := judging.NewJudgingService(judgeClient, logger)
	gradingSvc := grading.NewGradingService(evalClient, profilePort, achievementRepo, leaderboardCache, logger)
	notificationSvc := notification.NewNotificationService(notificationRepo, realtimePort, logger)
	feedbackSvc := feedback.NewFeedbackService(feedbackRepo, notificationSvc, realtimePort, logger)
	rankingSvc := ranking.NewRankingService(rankingRepo, profilePort, leaderboardCache, logger)
	achievementSvc := achievement.NewAchievementService(achievementRepo, notificationSvc, logger)
	channelManager := realtime.NewChannelManager(realtimePort, logger)
	ggAuth := auth2.NewGoogleAuthService(profilePort, jwtProvider, sysCfg.GGAuthConfig)
	localAuth := auth2.NewLocalAuthService(profilePort, jwtProvider)

	serviceProvider := http2.NewServiceProvider(
		judgingSvc, gradingSvc, feedbackSvc, notificationSvc,
		rankingSvc, achievementSvc, channelManager, ggAuth, localAuth)

	// SERVER
	httpServer := http2.NewServer(8082, "inteleval", *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
