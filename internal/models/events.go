package models

import (
	"time"

	"chatwire/pkg/conversations/types"
)

// WebhookEvent is the payload the platform POSTs to our webhook endpoint.
// Conversation and message are present depending on the event type.
type WebhookEvent struct {
	Type         types.WebhookEventType `json:"type"`
	Conversation *types.Conversation    `json:"conversation,omitempty"`
	Message      *types.Message         `json:"message,omitempty"`
}

// MessageRecord is the persisted form of a relayed or received message
type MessageRecord struct {
	ID             int64     `json:"id"`
	MessageID      string    `json:"messageId"`
	ConversationID string    `json:"conversationId"`
	ChannelID      string    `json:"channelId"`
	Direction      string    `json:"direction"`
	Status         string    `json:"status"`
	ContentType    string    `json:"contentType"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SendRequest is the local API payload accepted by POST /api/v1/messages
type SendRequest struct {
	ConversationID string               `json:"conversationId,omitempty"`
	To             string               `json:"to,omitempty"`
	ChannelID      string               `json:"channelId,omitempty"`
	Content        types.MessageContent `json:"content"`
}

// SendResult is returned by the local send API
type SendResult struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId,omitempty"`
	Status         string `json:"status"`
}
