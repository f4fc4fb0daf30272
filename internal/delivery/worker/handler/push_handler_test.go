package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tracker/config"
	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/delivery/validator"
	"tracker/internal/domain/constants"
	"tracker/internal/domain/service"
	"tracker/internal/infra/pubsub"
	mockService "tracker/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

var testNow = time.Unix(1_700_000_000, 0).UTC()

type pushFixture struct {
	handler *PushHandler
	sink    *mockService.MockOTPDeliverer
	echo    *echo.Echo
}

func newPushFixture(t *testing.T, worker *config.WorkerConfig) *pushFixture {
	sink := mockService.NewMockOTPDeliverer(t)

	h := NewPushHandler(PushHandlerParams{
		Config: &config.Config{Worker: worker},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Sink:   sink,
	})
	h.now = func() time.Time { return testNow }

	e := echo.New()
	e.Validator = validator.New()
	e.POST("/push", h.HandlePush)

	return &pushFixture{handler: h, sink: sink, echo: e}
}

func validEvent() *service.OTPEvent {
	return &service.OTPEvent{
		EventID:   "evt-1",
		UserID:    1,
		Username:  "alice",
		Email:     "alice@example.com",
		Code:      "048213",
		ExpiresAt: testNow.Add(5 * time.Minute),
	}
}

func pushBody(t *testing.T, data string, attributes map[string]string) []byte {
	t.Helper()

	var msg pubsub.PushMessage
	msg.Message.Data = data
	msg.Message.MessageID = "msg-1"
	msg.Message.Attributes = attributes
	msg.Subscription = "projects/test/subscriptions/otp-delivery"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func encodeEvent(t *testing.T, event *service.OTPEvent) string {
	t.Helper()

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(raw)
}

func (f *pushFixture) push(body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

func TestHandlePush_Delivers(t *testing.T) {
	f := newPushFixture(t, nil)
	event := validEvent()

	f.sink.EXPECT().
		DeliverOTP(mock.Anything, mock.MatchedBy(func(got *service.OTPEvent) bool {
			return got.EventID == event.EventID && got.Code == event.Code && got.UserID == event.UserID
		})).
		RunAndReturn(func(ctx context.Context, _ *service.OTPEvent) error {
			assert.Equal(t, "req-from-attributes", deliverycontext.GetRequestIDFromContext(ctx))

			return nil
		})

	rec := f.push(pushBody(t, encodeEvent(t, event), map[string]string{
		constants.AttrRequestID: "req-from-attributes",
	}), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_RetriesWhenSinkFails(t *testing.T) {
	f := newPushFixture(t, nil)

	f.sink.EXPECT().DeliverOTP(mock.Anything, mock.Anything).Return(errors.New("smtp: connection reset"))

	rec := f.push(pushBody(t, encodeEvent(t, validEvent()), nil), nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePush_DropsExpiredEvent(t *testing.T) {
	f := newPushFixture(t, nil)
	event := validEvent()
	event.ExpiresAt = testNow

	rec := f.push(pushBody(t, encodeEvent(t, event), nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	f.sink.AssertNotCalled(t, "DeliverOTP", mock.Anything, mock.Anything)
}

func TestHandlePush_RejectsBadMessages(t *testing.T) {
	noCode := validEvent()
	noCode.Code = ""

	shortCode := validEvent()
	shortCode.Code = "123"

	noUser := validEvent()
	noUser.UserID = 0

	tests := []struct {
		name string
		body func(t *testing.T) []byte
	}{
		{name: "not json", body: func(*testing.T) []byte { return []byte("{") }},
		{name: "not base64", body: func(t *testing.T) []byte { return pushBody(t, "%%%", nil) }},
		{name: "not an event", body: func(t *testing.T) []byte {
			return pushBody(t, base64.StdEncoding.EncodeToString([]byte("[1,2]")), nil)
		}},
		{name: "missing code", body: func(t *testing.T) []byte { return pushBody(t, encodeEvent(t, noCode), nil) }},
		{name: "short code", body: func(t *testing.T) []byte { return pushBody(t, encodeEvent(t, shortCode), nil) }},
		{name: "missing user", body: func(t *testing.T) []byte { return pushBody(t, encodeEvent(t, noUser), nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPushFixture(t, nil)

			rec := f.push(tt.body(t), nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlePush_VerifiesPushAuth(t *testing.T) {
	const audience = "https://notifier.example.com/push"

	tests := []struct {
		name    string
		header  string
		payload *idtoken.Payload
		err     error
		status  int
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", err: errors.New("idtoken: invalid signature"), status: http.StatusUnauthorized},
		{name: "foreign issuer", header: "Bearer ok", payload: &idtoken.Payload{Issuer: "https://evil.example.com"}, status: http.StatusUnauthorized},
		{
			name:    "unverified email",
			header:  "Bearer ok",
			payload: &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": false}},
			status:  http.StatusUnauthorized,
		},
		{
			name:    "valid",
			header:  "Bearer ok",
			payload: &idtoken.Payload{Issuer: "accounts.google.com", Claims: map[string]any{"email_verified": true}},
			status:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPushFixture(t, &config.WorkerConfig{VerifyPushAuth: true, Audience: audience})
			f.handler.validateToken = func(_ context.Context, token, gotAudience string) (*idtoken.Payload, error) {
				assert.Equal(t, audience, gotAudience)
				assert.Equal(t, tt.header, "Bearer "+token)

				return tt.payload, tt.err
			}
			if tt.status == http.StatusOK {
				f.sink.EXPECT().DeliverOTP(mock.Anything, mock.Anything).Return(nil)
			}

			var headers map[string]string
			if tt.header != "" {
				headers = map[string]string{echo.HeaderAuthorization: tt.header}
			}

			rec := f.push(pushBody(t, encodeEvent(t, validEvent()), nil), headers)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestExtractRequestID(t *testing.T) {
	f := newPushFixture(t, nil)
	ctx := deliverycontext.WithRequestID(context.Background(), "from-header")

	var msg pubsub.PushMessage
	event := validEvent()

	assert.Equal(t, "from-header", f.handler.extractRequestID(ctx, &msg, event))

	event.RequestID = "from-event"
	assert.Equal(t, "from-event", f.handler.extractRequestID(ctx, &msg, event))

	msg.Message.Attributes = map[string]string{constants.AttrRequestID: "from-attributes"}
	assert.Equal(t, "from-attributes", f.handler.extractRequestID(ctx, &msg, event))

	assert.NotEmpty(t, f.handler.extractRequestID(context.Background(), &pubsub.PushMessage{}, validEvent()))
}
