package pubsub

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
	"tracker/internal/domain/constants"
	"tracker/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"cloud.google.com/go/pubsub/v2/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.OTPEvent {
	return &service.OTPEvent{
		RequestID: "req-1",
		EventID:   "evt-1",
		UserID:    7,
		Username:  "alice",
		Email:     "alice@example.com",
		Code:      "123456",
		ExpiresAt: time.Unix(1_700_000_300, 0).UTC(),
	}
}

func TestLogDeliverer_WritesPasscode(t *testing.T) {
	var buf bytes.Buffer
	deliverer := NewLogDeliverer(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, deliverer.DeliverOTP(context.Background(), testEvent()))
	assert.Contains(t, buf.String(), "otp=123456")
	assert.Contains(t, buf.String(), "username=alice")
	assert.NoError(t, deliverer.Close())
}

func TestLocalHTTPPublisher_PushesEnvelope(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	require.NoError(t, publisher.DeliverOTP(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, constants.EventTypeOTPIssued, received.Message.Attributes[constants.AttrEventType])
	assert.Equal(t, "7", received.Message.Attributes[constants.AttrUserID])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var event service.OTPEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "123456", event.Code)
	assert.Equal(t, int64(7), event.UserID)
}

func TestLocalHTTPPublisher_WorkerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	err := publisher.DeliverOTP(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGooglePubSubPublisher_PublishesToTopic(t *testing.T) {
	ctx := context.Background()

	srv := pstest.NewServer()
	defer srv.Close()

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	admin, err := pubsub.NewClient(ctx, "tracker", option.WithGRPCConn(conn))
	require.NoError(t, err)
	_, err = admin.TopicAdminClient.CreateTopic(ctx, &pubsubpb.Topic{Name: "projects/tracker/topics/otp"})
	require.NoError(t, err)

	publisher, err := NewGooglePubSubPublisher(ctx, "tracker", "otp", newDiscardLogger(), option.WithGRPCConn(conn))
	require.NoError(t, err)

	require.NoError(t, publisher.DeliverOTP(ctx, testEvent()))

	messages := srv.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "evt-1", messages[0].Attributes[constants.AttrEventID])
	assert.Equal(t, "req-1", messages[0].Attributes[constants.AttrRequestID])

	var event service.OTPEvent
	require.NoError(t, json.Unmarshal(messages[0].Data, &event))
	assert.Equal(t, "alice", event.Username)
}

func TestGooglePubSubPublisher_MissingTopic(t *testing.T) {
	ctx := context.Background()

	srv := pstest.NewServer()
	defer srv.Close()

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	_, err = NewGooglePubSubPublisher(ctx, "tracker", "missing", newDiscardLogger(), option.WithGRPCConn(conn))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get topic missing")
}

func TestNewDeliverer_Selection(t *testing.T) {
	ctx := context.Background()
	logger := newDiscardLogger()

	cfg := &config.Config{}
	cfg.OTP.Delivery = config.OTPDeliveryLog
	deliverer, err := newDeliverer(ctx, cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &logDeliverer{}, deliverer)

	cfg.OTP.Delivery = config.OTPDeliveryPubSub
	_, err = newDeliverer(ctx, cfg, logger)
	require.Error(t, err)

	cfg.PubSub = &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:8081/push"}
	deliverer, err = newDeliverer(ctx, cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, deliverer)

	cfg.PubSub = &config.PubSubConfig{Provider: constants.PubSubProviderLocal}
	_, err = newDeliverer(ctx, cfg, logger)
	require.Error(t, err)

	cfg.PubSub = &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}
	_, err = newDeliverer(ctx, cfg, logger)
	require.EqualError(t, err, "topic ID is required for google provider")

	cfg.PubSub = &config.PubSubConfig{Provider: "kafka"}
	_, err = newDeliverer(ctx, cfg, logger)
	require.EqualError(t, err, "unknown pubsub provider: kafka")
}
