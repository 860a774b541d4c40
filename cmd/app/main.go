package main

import (
	"context"

	dbadapter "chirp/internal/adapters/database"
	"chirp/internal/adapters/httpapi"
	mailadapter "chirp/internal/adapters/mail"
	oauthadapter "chirp/internal/adapters/oauth"
	redisadapter "chirp/internal/adapters/redis"
	"chirp/internal/config"
	authapp "chirp/internal/core/auth/service"
	feedapp "chirp/internal/core/feed/service"
	"chirp/internal/core/follower"
	"chirp/internal/core/token"
	tokenapp "chirp/internal/core/token/service"
	"chirp/internal/core/tweet"
	tweetapp "chirp/internal/core/tweet/service"
	"chirp/internal/core/user"
	userapp "chirp/internal/core/user/service"

	goredis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	logger, err := config.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	db, err := config.OpenDB(cfg.DBDSN)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&user.User{},
		&user.CircleMember{},
		&follower.Follower{},
		&token.RefreshToken{},
		&tweet.Tweet{},
		&tweet.Hashtag{},
		&tweet.Mention{},
		&tweet.Media{},
		&tweet.Like{},
		&tweet.Bookmark{},
	); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	logger.Info("database migrations completed")

	ctx := context.Background()
	redisClient, err := config.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}

	defer closeResources(logger, db, redisClient)

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(db)
	tokenRepo := dbadapter.NewRefreshTokenRepositoryDatabase(db)
	tweetRepo := dbadapter.NewTweetRepositoryDatabase(db)
	engagementRepo := dbadapter.NewEngagementRepositoryDatabase(db)
	cooldown := redisadapter.NewCooldownRedis(redisClient)
	mailer := mailadapter.NewLogMailer(logger)
	google := oauthadapter.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	tokenSvc := tokenapp.NewTokenService(tokenRepo, tokenapp.Secrets{
		Access:         cfg.AccessTokenSecret,
		Refresh:        cfg.RefreshTokenSecret,
		EmailVerify:    cfg.EmailVerifySecret,
		ForgotPassword: cfg.ForgotPasswordSecret,
	}, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authSvc := authapp.NewAuthService(userRepo, tokenSvc, google)
	userSvc := userapp.NewUserService(userRepo, followerRepo, tokenSvc, mailer, cooldown, logger)
	tweetSvc := tweetapp.NewTweetService(tweetRepo, engagementRepo)
	feedSvc := feedapp.NewFeedService(tweetRepo, engagementRepo, userRepo, followerRepo)

	r := httpapi.SetupRoutes(authSvc, userSvc, tweetSvc, feedSvc, tokenSvc, userRepo, cfg.UploadDir)

	logger.Info("app is running", zap.String("port", cfg.AppPort))
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}

func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *goredis.Client) {
	if err := redisClient.Close(); err != nil {
		logger.Error("error closing redis connection", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("error getting raw db", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("error closing database connection", zap.Error(err))
	}
}
