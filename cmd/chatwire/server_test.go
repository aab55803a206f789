package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"chatwire/internal/database"
	"chatwire/internal/models"
	"chatwire/internal/retry"
	"chatwire/internal/service"
	"chatwire/pkg/circuitbreaker"
	"chatwire/pkg/conversations"
	"chatwire/pkg/conversations/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-webhook-secret"

// testServer wires a Server against a fake platform API and a throwaway
// database
func testServer(t *testing.T, platform http.HandlerFunc) (*Server, *database.Database) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	platformSrv := httptest.NewServer(platform)
	t.Cleanup(platformSrv.Close)

	client := conversations.NewClient(platformSrv.URL, "test-key", nil)
	backoff := retry.NewBackoff(retry.BackoffConfig{
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		MaxAttempts:  2,
	})
	breaker := circuitbreaker.New("test", 10, time.Minute, logger)

	msgService := service.NewMessageService(client, db, backoff, breaker, "ch-default", logger)
	eventService := service.NewEventService(db, logger)

	return NewServer(models.ServerConfig{Port: 0}, msgService, eventService, testSecret, logger), db
}

func noPlatformCalls(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected platform call: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := testServer(t, noPlatformCalls(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := testServer(t, noPlatformCalls(t))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "counters")
	assert.Contains(t, body, "uptime_ms")
}

func TestWebhookAcceptsSignedEvent(t *testing.T) {
	srv, db := testServer(t, noPlatformCalls(t))

	event := models.WebhookEvent{
		Type: types.WebhookEventMessageCreated,
		Message: &types.Message{
			ID:             "msg-1",
			ConversationID: "conv-1",
			ChannelID:      "ch-1",
			Type:           types.ContentTypeText,
			Content:        types.NewTextContent("hello from webhook"),
			Direction:      types.MessageDirectionReceived,
			Status:         types.MessageStatusPending,
		},
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhook/conversations", bytes.NewReader(body))
	req.Header.Set(signatureHeaderName, signBody(testSecret, body))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	record, err := db.GetMessage(context.Background(), "msg-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "hello from webhook", record.Body)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	srv, _ := testServer(t, noPlatformCalls(t))

	body := []byte(`{"type":"message.created"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook/conversations", bytes.NewReader(body))
	req.Header.Set(signatureHeaderName, signBody("attacker-secret", body))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookRejectsInvalidJSON(t *testing.T) {
	srv, _ := testServer(t, noPlatformCalls(t))

	body := []byte("not json")
	req := httptest.NewRequest(http.MethodPost, "/webhook/conversations", bytes.NewReader(body))
	req.Header.Set(signatureHeaderName, signBody(testSecret, body))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookRequiresEventType(t *testing.T) {
	srv, _ := testServer(t, noPlatformCalls(t))

	body := []byte(`{"message":{"id":"msg-1","channelId":"ch-1","type":"text","content":{"text":"x"},"createdDatetime":"2024-03-01T10:30:00Z"}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook/conversations", bytes.NewReader(body))
	req.Header.Set(signatureHeaderName, signBody(testSecret, body))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageEndpoint(t *testing.T) {
	platform := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/conversations/conv-1/messages", r.URL.Path)
		_ = json.NewEncoder(w).Encode(types.Message{
			ID:             "msg-out",
			ConversationID: "conv-1",
			Status:         types.MessageStatusPending,
		})
	}

	srv, _ := testServer(t, platform)

	payload := `{"conversationId":"conv-1","content":{"text":"hello"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader([]byte(payload)))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)

	var result models.SendResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "msg-out", result.MessageID)
	assert.Equal(t, "conv-1", result.ConversationID)
}

func TestSendMessageEndpointValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{`},
		{"missing destination", `{"content":{"text":"x"}}`},
		{"empty content", `{"conversationId":"conv-1","content":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := testServer(t, noPlatformCalls(t))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader([]byte(tt.payload)))
			rec := httptest.NewRecorder()
			srv.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSendMessageEndpointUpstreamFailure(t *testing.T) {
	platform := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"code":21,"description":"channel inactive"}]}`))
	}

	srv, _ := testServer(t, platform)

	payload := `{"conversationId":"conv-1","content":{"text":"hello"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader([]byte(payload)))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv, _ := testServer(t, noPlatformCalls(t))

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
