package types

import "time"

// MessageDirection distinguishes inbound from outbound messages
type MessageDirection string

const (
	MessageDirectionSent     MessageDirection = "sent"
	MessageDirectionReceived MessageDirection = "received"
)

// MessageStatus is deliberately an open string: "accepted" is the only
// status documented for send responses, but the platform returns additional
// lifecycle values and may add more without notice.
type MessageStatus string

const (
	MessageStatusAccepted  MessageStatus = "accepted"
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
	MessageStatusFailed    MessageStatus = "failed"
	MessageStatusDeleted   MessageStatus = "deleted"
)

// Message represents a single message inside a conversation
type Message struct {
	ID              string           `json:"id"`
	ConversationID  string           `json:"conversationId,omitempty"`
	Platform        string           `json:"platform,omitempty"`
	To              string           `json:"to,omitempty"`
	From            string           `json:"from,omitempty"`
	ChannelID       string           `json:"channelId"`
	Type            ContentType      `json:"type"`
	Content         MessageContent   `json:"content"`
	Direction       MessageDirection `json:"direction,omitempty"`
	Status          MessageStatus    `json:"status,omitempty"`
	CreatedDatetime time.Time        `json:"createdDatetime"`
	UpdatedDatetime *time.Time       `json:"updatedDatetime,omitempty"`
}

// MessageList represents a paginated list of messages
type MessageList struct {
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
	Count      int       `json:"count"`
	TotalCount int       `json:"totalCount"`
	Items      []Message `json:"items"`
}

// SendMessageRequest sends a message over a channel outside of conversation
// context
type SendMessageRequest struct {
	To        string         `json:"to"`
	From      string         `json:"from"`
	Type      ContentType    `json:"type"`
	Content   MessageContent `json:"content"`
	ReportURL string         `json:"reportUrl,omitempty"`
}

// SendMessageResponse acknowledges an accepted send request
type SendMessageResponse struct {
	ID     string        `json:"id"`
	Status MessageStatus `json:"status"`
}
