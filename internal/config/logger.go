package config

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. APP_ENV=production switches to the
// JSON production config.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
