package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ConversationStatus represents the lifecycle state of a conversation
type ConversationStatus string

const (
	ConversationStatusActive   ConversationStatus = "active"
	ConversationStatusArchived ConversationStatus = "archived"
)

// UnmarshalJSON rejects status values outside the documented enumeration
func (s *ConversationStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch ConversationStatus(raw) {
	case ConversationStatusActive, ConversationStatusArchived:
		*s = ConversationStatus(raw)
		return nil
	}
	return fmt.Errorf("unknown conversation status: %q", raw)
}

// Contact represents the remote party of a conversation
type Contact struct {
	ID              string                 `json:"id"`
	Href            string                 `json:"href,omitempty"`
	MSISDN          string                 `json:"msisdn,omitempty"`
	FirstName       string                 `json:"firstName,omitempty"`
	LastName        string                 `json:"lastName,omitempty"`
	CustomDetails   map[string]interface{} `json:"customDetails,omitempty"`
	CreatedDatetime *time.Time             `json:"createdDatetime,omitempty"`
	UpdatedDatetime *time.Time             `json:"updatedDatetime,omitempty"`
}

// GetDisplayName returns the best available display name for the contact
func (c *Contact) GetDisplayName() string {
	if c.FirstName != "" && c.LastName != "" {
		return c.FirstName + " " + c.LastName
	}
	if c.FirstName != "" {
		return c.FirstName
	}
	return c.MSISDN
}

// MessageSummary points at the message history of a conversation
type MessageSummary struct {
	TotalCount    int    `json:"totalCount"`
	Href          string `json:"href,omitempty"`
	LastMessageID string `json:"lastMessageId,omitempty"`
}

// Conversation represents a thread between a business and a contact
type Conversation struct {
	ID                   string             `json:"id"`
	ContactID            string             `json:"contactId"`
	Contact              *Contact           `json:"contact,omitempty"`
	Channels             []Channel          `json:"channels,omitempty"`
	Status               ConversationStatus `json:"status"`
	CreatedDatetime      time.Time          `json:"createdDatetime"`
	UpdatedDatetime      *time.Time         `json:"updatedDatetime,omitempty"`
	LastReceivedDatetime *time.Time         `json:"lastReceivedDatetime,omitempty"`
	LastUsedChannelID    string             `json:"lastUsedChannelId,omitempty"`
	Messages             *MessageSummary    `json:"messages,omitempty"`
}

// ConversationList represents a paginated list of conversations
type ConversationList struct {
	Offset     int            `json:"offset"`
	Limit      int            `json:"limit"`
	Count      int            `json:"count"`
	TotalCount int            `json:"totalCount"`
	Items      []Conversation `json:"items"`
}

// StartConversationRequest starts a conversation by sending a first message
// to a contact over the given channel. Type is a hint matching the populated
// content variant.
type StartConversationRequest struct {
	To        string         `json:"to"`
	ChannelID string         `json:"channelId"`
	Type      ContentType    `json:"type"`
	Content   MessageContent `json:"content"`
	ReportURL string         `json:"reportUrl,omitempty"`
}

// Fallback instructs the platform to retry over another channel when the
// primary one does not deliver in time
type Fallback struct {
	From  string `json:"from"`
	After string `json:"after,omitempty"`
}

// ReplyRequest appends a message to an existing conversation
type ReplyRequest struct {
	Type      ContentType    `json:"type"`
	Content   MessageContent `json:"content"`
	ChannelID string         `json:"channelId,omitempty"`
	Fallback  *Fallback      `json:"fallback,omitempty"`
}

// ConversationUpdateRequest changes conversation lifecycle state
// (archive / unarchive)
type ConversationUpdateRequest struct {
	Status ConversationStatus `json:"status"`
}
