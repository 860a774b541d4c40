package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer records account emails instead of delivering them. Delivery
// transport is an external collaborator swapped in behind the same port.
type LogMailer struct {
	Logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{Logger: logger}
}

func (m *LogMailer) SendVerifyEmail(ctx context.Context, to, token string) error {
	m.Logger.Info("send verify email", zap.String("to", to), zap.String("token", token))
	return nil
}

func (m *LogMailer) SendForgotPasswordEmail(ctx context.Context, to, token string) error {
	m.Logger.Info("send forgot password email", zap.String("to", to), zap.String("token", token))
	return nil
}
