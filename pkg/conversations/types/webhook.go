package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// WebhookStatus represents whether a subscription receives deliveries
type WebhookStatus string

const (
	WebhookStatusEnabled  WebhookStatus = "enabled"
	WebhookStatusDisabled WebhookStatus = "disabled"
)

// UnmarshalJSON rejects status values outside the documented enumeration
func (s *WebhookStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch WebhookStatus(raw) {
	case WebhookStatusEnabled, WebhookStatusDisabled:
		*s = WebhookStatus(raw)
		return nil
	}
	return fmt.Errorf("unknown webhook status: %q", raw)
}

// WebhookEventType names a platform event a webhook can subscribe to
type WebhookEventType string

const (
	WebhookEventConversationCreated WebhookEventType = "conversation.created"
	WebhookEventConversationUpdated WebhookEventType = "conversation.updated"
	WebhookEventMessageCreated      WebhookEventType = "message.created"
	WebhookEventMessageUpdated      WebhookEventType = "message.updated"
)

// Webhook represents a subscription to platform events
type Webhook struct {
	ID              string             `json:"id"`
	Events          []WebhookEventType `json:"events"`
	ChannelID       string             `json:"channelId,omitempty"`
	URL             string             `json:"url"`
	Status          WebhookStatus      `json:"status"`
	CreatedDatetime *time.Time         `json:"createdDatetime,omitempty"`
	UpdatedDatetime *time.Time         `json:"updatedDatetime,omitempty"`
}

// WebhookCreateRequest registers a new event subscription
type WebhookCreateRequest struct {
	Events    []WebhookEventType `json:"events"`
	ChannelID string             `json:"channelId,omitempty"`
	URL       string             `json:"url"`
	Status    WebhookStatus      `json:"status,omitempty"`
}

// WebhookUpdateRequest modifies an existing subscription; zero fields are
// left untouched by the platform
type WebhookUpdateRequest struct {
	Events []WebhookEventType `json:"events,omitempty"`
	URL    string             `json:"url,omitempty"`
	Status WebhookStatus      `json:"status,omitempty"`
}

// WebhookList represents a paginated list of webhooks
type WebhookList struct {
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
	Count      int       `json:"count"`
	TotalCount int       `json:"totalCount"`
	Items      []Webhook `json:"items"`
}
