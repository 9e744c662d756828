package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidtube/config"
	"vidtube/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.AccountEvent {
	return &service.AccountEvent{
		RequestID:  "req-1",
		Type:       service.AccountEventRegistered,
		UserID:     "0190b6c4-0000-7000-8000-000000000001",
		Username:   "alice",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewPublisher_Selection(t *testing.T) {
	logger := discardLogger()
	ctx := context.Background()

	p, err := newPublisher(ctx, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, p)

	p, err = newPublisher(ctx, &config.PubSubConfig{Provider: config.PubSubProviderNoop}, logger)
	require.NoError(t, err)
	assert.NoError(t, p.PublishAccountEvent(ctx, testEvent()))

	p, err = newPublisher(ctx, &config.PubSubConfig{Provider: config.PubSubProviderKafka, Brokers: []string{"localhost:9092"}, TopicID: "account-events"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &kafkaPublisher{}, p)
	assert.NoError(t, p.Close())

	tests := []struct {
		name string
		cfg  *config.PubSubConfig
	}{
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: config.PubSubProviderLocal}},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: config.PubSubProviderGoogle, TopicID: "t"}},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: config.PubSubProviderGoogle, ProjectID: "p"}},
		{name: "kafka without brokers", cfg: &config.PubSubConfig{Provider: config.PubSubProviderKafka, TopicID: "t"}},
		{name: "unknown provider", cfg: &config.PubSubConfig{Provider: "carrier-pigeon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newPublisher(ctx, tt.cfg, logger)
			assert.Error(t, err)
		})
	}
}

func TestLocalHTTPPublisher_PushFormat(t *testing.T) {
	var (
		received  PushMessage
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	require.NoError(t, publisher.PublishAccountEvent(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, localSubscription, received.Subscription)
	assert.Equal(t, "user.registered", received.Message.Attributes["event_type"])
	assert.NotEmpty(t, received.Message.MessageID)

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var event service.AccountEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "alice", event.Username)
	assert.Equal(t, service.AccountEventRegistered, event.Type)
}

func TestLocalHTTPPublisher_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	assert.Error(t, publisher.PublishAccountEvent(context.Background(), testEvent()))
}
