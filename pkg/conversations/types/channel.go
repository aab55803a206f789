package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChannelStatus represents the provisioning state of a messaging channel
type ChannelStatus string

const (
	ChannelStatusInactive               ChannelStatus = "inactive"
	ChannelStatusActive                 ChannelStatus = "active"
	ChannelStatusPending                ChannelStatus = "pending"
	ChannelStatusActivationRequired     ChannelStatus = "activation_required"
	ChannelStatusActivationCodeRequired ChannelStatus = "activation_code_required"
	ChannelStatusActivating             ChannelStatus = "activating"
	ChannelStatusDeleted                ChannelStatus = "deleted"
)

// UnmarshalJSON rejects status values outside the documented enumeration
func (s *ChannelStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch ChannelStatus(raw) {
	case ChannelStatusInactive, ChannelStatusActive, ChannelStatusPending,
		ChannelStatusActivationRequired, ChannelStatusActivationCodeRequired,
		ChannelStatusActivating, ChannelStatusDeleted:
		*s = ChannelStatus(raw)
		return nil
	}
	return fmt.Errorf("unknown channel status: %q", raw)
}

// Channel represents a messaging endpoint (SMS, WhatsApp, email, ...)
type Channel struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	PlatformID      string        `json:"platformId"`
	Status          ChannelStatus `json:"status"`
	CreatedDatetime *time.Time    `json:"createdDatetime,omitempty"`
	UpdatedDatetime *time.Time    `json:"updatedDatetime,omitempty"`
}

// IsActive reports whether the channel can currently carry messages
func (c *Channel) IsActive() bool {
	return c.Status == ChannelStatusActive
}

// ChannelList represents a paginated list of channels
type ChannelList struct {
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
	Count      int       `json:"count"`
	TotalCount int       `json:"totalCount"`
	Items      []Channel `json:"items"`
}
