package conversations

import (
	"context"

	"chatwire/pkg/conversations/types"
)

// Client is the surface of the conversations platform API
type Client interface {
	// Conversations
	StartConversation(ctx context.Context, req *types.StartConversationRequest) (*types.Conversation, error)
	ListConversations(ctx context.Context, offset, limit int) (*types.ConversationList, error)
	GetConversation(ctx context.Context, conversationID string) (*types.Conversation, error)
	UpdateConversation(ctx context.Context, conversationID string, req *types.ConversationUpdateRequest) (*types.Conversation, error)
	Reply(ctx context.Context, conversationID string, req *types.ReplyRequest) (*types.Message, error)

	// Messages
	ListMessages(ctx context.Context, conversationID string, offset, limit int) (*types.MessageList, error)
	GetMessage(ctx context.Context, messageID string) (*types.Message, error)
	SendMessage(ctx context.Context, req *types.SendMessageRequest) (*types.SendMessageResponse, error)

	// Channels
	ListChannels(ctx context.Context) (*types.ChannelList, error)
	GetChannel(ctx context.Context, channelID string) (*types.Channel, error)

	// Webhooks
	CreateWebhook(ctx context.Context, req *types.WebhookCreateRequest) (*types.Webhook, error)
	ListWebhooks(ctx context.Context) (*types.WebhookList, error)
	GetWebhook(ctx context.Context, webhookID string) (*types.Webhook, error)
	UpdateWebhook(ctx context.Context, webhookID string, req *types.WebhookUpdateRequest) (*types.Webhook, error)
	DeleteWebhook(ctx context.Context, webhookID string) error
}
