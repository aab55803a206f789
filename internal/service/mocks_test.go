package service

import (
	"context"
	"fmt"
	"sync"

	"chatwire/internal/models"
	"chatwire/pkg/conversations/types"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// mockStore is an in-memory EventStore
type mockStore struct {
	mu           sync.Mutex
	messages     map[string]*models.MessageRecord
	processed    map[string]bool
	saveErr      error
	updateErr    error
	markErr      error
	cleanupCalls []int
}

func newMockStore() *mockStore {
	return &mockStore{
		messages:  make(map[string]*models.MessageRecord),
		processed: make(map[string]bool),
	}
}

func (m *mockStore) SaveMessage(ctx context.Context, record *models.MessageRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *record
	m.messages[record.MessageID] = &copied
	return nil
}

func (m *mockStore) UpdateMessageStatus(ctx context.Context, messageID, status string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	record, ok := m.messages[messageID]
	if !ok {
		return fmt.Errorf("message %s not found", messageID)
	}
	record.Status = status
	return nil
}

func (m *mockStore) HasProcessedEvent(ctx context.Context, eventKey string) (bool, error) {
	return m.processed[eventKey], nil
}

func (m *mockStore) MarkEventProcessed(ctx context.Context, eventKey string) (bool, error) {
	if m.markErr != nil {
		return false, m.markErr
	}
	if m.processed[eventKey] {
		return false, nil
	}
	m.processed[eventKey] = true
	return true, nil
}

func (m *mockStore) CleanupOldRecords(ctx context.Context, retentionDays int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupCalls = append(m.cleanupCalls, retentionDays)
	return nil
}

func (m *mockStore) cleanupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cleanupCalls)
}

func (m *mockStore) firstCleanupRetention() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanupCalls[0]
}

// mockClient implements conversations.Client with overridable functions
type mockClient struct {
	startConversationFn func(ctx context.Context, req *types.StartConversationRequest) (*types.Conversation, error)
	replyFn             func(ctx context.Context, conversationID string, req *types.ReplyRequest) (*types.Message, error)
	createWebhookFn     func(ctx context.Context, req *types.WebhookCreateRequest) (*types.Webhook, error)
	listWebhooksFn      func(ctx context.Context) (*types.WebhookList, error)
	updateWebhookFn     func(ctx context.Context, webhookID string, req *types.WebhookUpdateRequest) (*types.Webhook, error)
}

func (m *mockClient) StartConversation(ctx context.Context, req *types.StartConversationRequest) (*types.Conversation, error) {
	return m.startConversationFn(ctx, req)
}

func (m *mockClient) ListConversations(ctx context.Context, offset, limit int) (*types.ConversationList, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClient) GetConversation(ctx context.Context, conversationID string) (*types.Conversation, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClient) UpdateConversation(ctx context.Context, conversationID string, req *types.ConversationUpdateRequest) (*types.Conversation, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClient) Reply(ctx context.Context, conversationID string, req *types.ReplyRequest) (*types.Message, error) {
	return m.replyFn(ctx, conversationID, req)
}

func (m *mockClient) ListMessages(ctx context.Context, conversationID string, offset, limit int) (*types.MessageList, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClient) GetMessage(ctx context.Context, messageID string) (*types.Message, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClient) SendMessage(ctx context.Context, req *types.SendMessageRequest) (*types.SendMessageResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClient) ListChannels(ctx context.Context) (*types.ChannelList, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClient) GetChannel(ctx context.Context, channelID string) (*types.Channel, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClient) CreateWebhook(ctx context.Context, req *types.WebhookCreateRequest) (*types.Webhook, error) {
	return m.createWebhookFn(ctx, req)
}

func (m *mockClient) ListWebhooks(ctx context.Context) (*types.WebhookList, error) {
	return m.listWebhooksFn(ctx)
}

func (m *mockClient) GetWebhook(ctx context.Context, webhookID string) (*types.Webhook, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockClient) UpdateWebhook(ctx context.Context, webhookID string, req *types.WebhookUpdateRequest) (*types.Webhook, error) {
	return m.updateWebhookFn(ctx, webhookID, req)
}

func (m *mockClient) DeleteWebhook(ctx context.Context, webhookID string) error {
	return fmt.Errorf("not implemented")
}
