// Package pubsub delivers one-time passcodes out of band, either to the process log
// or through a Pub/Sub topic consumed by the notifier worker.
package pubsub

import (
	"context"
	"log/slog"

	"tracker/internal/domain/service"
)

// logDeliverer writes passcodes to the diagnostic log. Development only.
type logDeliverer struct {
	logger *slog.Logger
}

// NewLogDeliverer creates a deliverer that logs every passcode.
func NewLogDeliverer(logger *slog.Logger) service.OTPDeliverer {
	return &logDeliverer{logger: logger}
}

func (d *logDeliverer) DeliverOTP(ctx context.Context, event *service.OTPEvent) error {
	d.logger.LogAttrs(ctx, slog.LevelInfo, "OTP issued",
		slog.String("event_id", event.EventID),
		slog.Int64("user_id", event.UserID),
		slog.String("username", event.Username),
		slog.String("otp", event.Code),
		slog.Time("expires_at", event.ExpiresAt),
	)

	return nil
}

func (d *logDeliverer) Close() error {
	return nil
}
