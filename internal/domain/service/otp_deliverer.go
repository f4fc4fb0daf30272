package service

import (
	"context"
	"time"
)

// OTPEvent carries a freshly issued passcode to an out-of-band delivery channel.
type OTPEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	EventID     string    `json:"event_id" validate:"required"`
	UserID      int64     `json:"user_id" validate:"gt=0"`
	Username    string    `json:"username" validate:"required"`
	Email       string    `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Code        string    `json:"otp" validate:"required,len=6,numeric"`
	ExpiresAt   time.Time `json:"expires_at" validate:"required"`
}

// OTPDeliverer hands passcodes to the user through a channel other than the login response.
type OTPDeliverer interface {
	// DeliverOTP sends the passcode described by event.
	DeliverOTP(ctx context.Context, event *OTPEvent) error

	// Close releases any resources held by the deliverer
	Close() error
}
