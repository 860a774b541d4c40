package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config collects everything the app reads from the environment. It is
// built once in main and injected; nothing else touches os.Getenv.
type Config struct {
	AppPort   string
	DBDSN     string
	UploadDir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessTokenSecret    string
	RefreshTokenSecret   string
	EmailVerifySecret    string
	ForgotPasswordSecret string
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
}

// Load reads .env when present and validates the required keys.
func Load() (*Config, error) {
	// Missing .env is fine: system environment wins anyway.
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		DBDSN:     os.Getenv("DB_DSN"),
		UploadDir: getenv("UPLOAD_DIR", "uploads"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AccessTokenSecret:    os.Getenv("ACCESS_TOKEN_SECRET_KEY"),
		RefreshTokenSecret:   os.Getenv("REFRESH_TOKEN_SECRET_KEY"),
		EmailVerifySecret:    os.Getenv("EMAIL_VERIFICATION_SECRET_KEY"),
		ForgotPasswordSecret: os.Getenv("FORGOT_PASSWORD_SECRET_KEY"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is not set")
	}
	for key, val := range map[string]string{
		"ACCESS_TOKEN_SECRET_KEY":       cfg.AccessTokenSecret,
		"REFRESH_TOKEN_SECRET_KEY":      cfg.RefreshTokenSecret,
		"EMAIL_VERIFICATION_SECRET_KEY": cfg.EmailVerifySecret,
		"FORGOT_PASSWORD_SECRET_KEY":    cfg.ForgotPasswordSecret,
	} {
		if val == "" {
			return nil, fmt.Errorf("%s is not set", key)
		}
	}

	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}
	cfg.RedisDB = redisDB

	cfg.AccessTokenTTL, err = time.ParseDuration(getenv("ACCESS_TOKEN_EXPIRES_IN", "15m"))
	if err != nil {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRES_IN: %w", err)
	}
	cfg.RefreshTokenTTL, err = time.ParseDuration(getenv("REFRESH_TOKEN_EXPIRES_IN", "2400h"))
	if err != nil {
		return nil, fmt.Errorf("REFRESH_TOKEN_EXPIRES_IN: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
