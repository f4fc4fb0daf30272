// Package handler contains the Pub/Sub push endpoint of the OTP notifier.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tracker/config"
	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/domain/constants"
	"tracker/internal/domain/service"
	"tracker/internal/infra/pubsub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// tokenValidator checks a Google-signed OIDC token against an audience.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler receives OTP events pushed by Pub/Sub and hands them to the delivery sink.
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	validateToken  tokenValidator
	logger         *slog.Logger
	sink           service.OTPDeliverer
	now            func() time.Time
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Sink   service.OTPDeliverer
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	h := &PushHandler{
		validateToken: idtoken.Validate,
		logger:        params.Logger,
		sink:          params.Sink,
		now:           time.Now,
	}

	if params.Config.Worker != nil {
		h.verifyPushAuth = params.Config.Worker.VerifyPushAuth
		h.audience = params.Config.Worker.Audience
	}

	return h
}

// HandlePush handles incoming Pub/Sub push messages.
// Any status other than 2xx makes Pub/Sub redeliver, so only transient failures answer 503.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Notifier] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Notifier] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Notifier] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.OTPEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Notifier] Failed to parse OTP event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	if err := c.Validate(&event); err != nil {
		h.logger.Error("[Notifier] Rejected OTP event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if !h.now().Before(event.ExpiresAt) {
		reqLogger.Warn("[Notifier] Dropping expired OTP event",
			slog.String("event_id", event.EventID),
			slog.Time("expires_at", event.ExpiresAt),
		)

		return c.NoContent(http.StatusOK)
	}

	if err := h.deliver(ctx, &event); err != nil {
		reqLogger.Error("[Notifier] Failed to deliver OTP",
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Notifier] OTP delivered",
		slog.String("event_id", event.EventID),
		slog.Int64("user_id", event.UserID),
	)

	return c.NoContent(http.StatusOK)
}

func (h *PushHandler) deliver(ctx context.Context, event *service.OTPEvent) error {
	if err := h.sink.DeliverOTP(ctx, event); err != nil {
		return newRetryableError(err)
	}

	return nil
}

// extractRequestID prefers message attributes, then the event, then the inbound header.
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *pubsub.PushMessage, event *service.OTPEvent) string {
	if requestID := pushMsg.Message.Attributes[constants.AttrRequestID]; requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
