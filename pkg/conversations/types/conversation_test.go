package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStatusUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ConversationStatus
		wantErr bool
	}{
		{"active", `"active"`, ConversationStatusActive, false},
		{"archived", `"archived"`, ConversationStatusArchived, false},
		{"unknown value rejected", `"closed"`, "", true},
		{"empty string rejected", `""`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ConversationStatus
			err := json.Unmarshal([]byte(tt.input), &s)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, s)
			}
		})
	}
}

func TestContactGetDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		contact  Contact
		expected string
	}{
		{
			name:     "full name",
			contact:  Contact{FirstName: "Jane", LastName: "Doe", MSISDN: "31612345678"},
			expected: "Jane Doe",
		},
		{
			name:     "first name only",
			contact:  Contact{FirstName: "Jane", MSISDN: "31612345678"},
			expected: "Jane",
		},
		{
			name:     "falls back to msisdn",
			contact:  Contact{LastName: "Doe", MSISDN: "31612345678"},
			expected: "31612345678",
		},
		{
			name:     "empty contact",
			contact:  Contact{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.contact.GetDisplayName())
		})
	}
}

func TestConversationUnmarshal(t *testing.T) {
	payload := `{
		"id": "2e15efafec384e1c82e9842075e87beb",
		"contactId": "a621095fa44947a28b441cfdf85cb802",
		"contact": {
			"id": "a621095fa44947a28b441cfdf85cb802",
			"msisdn": "31612345678",
			"firstName": "Jane",
			"lastName": "Doe",
			"customDetails": {"userId": 12345}
		},
		"channels": [
			{"id": "ch-1", "name": "whatsapp-main", "platformId": "whatsapp", "status": "active"}
		],
		"status": "active",
		"createdDatetime": "2024-03-01T10:30:00Z",
		"lastUsedChannelId": "ch-1",
		"messages": {
			"totalCount": 12,
			"href": "https://api.example.com/v1/conversations/2e15efafec384e1c82e9842075e87beb/messages",
			"lastMessageId": "b6e324cd5f724ec3a3d5b19e9397a6e9"
		}
	}`

	var conv Conversation
	require.NoError(t, json.Unmarshal([]byte(payload), &conv))

	assert.Equal(t, ConversationStatusActive, conv.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), conv.CreatedDatetime)
	require.NotNil(t, conv.Contact)
	assert.Equal(t, "Jane Doe", conv.Contact.GetDisplayName())
	assert.Equal(t, float64(12345), conv.Contact.CustomDetails["userId"])
	require.NotNil(t, conv.Messages)
	assert.Equal(t, "b6e324cd5f724ec3a3d5b19e9397a6e9", conv.Messages.LastMessageID)
	require.Len(t, conv.Channels, 1)
	assert.True(t, conv.Channels[0].IsActive())
}

func TestStartConversationRequestMarshal(t *testing.T) {
	req := StartConversationRequest{
		To:        "31612345678",
		ChannelID: "ch-1",
		Type:      ContentTypeText,
		Content:   NewTextContent("hello"),
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"to": "31612345678",
		"channelId": "ch-1",
		"type": "text",
		"content": {"text": "hello"}
	}`, string(data))
}

func TestReplyRequestWithFallback(t *testing.T) {
	req := ReplyRequest{
		Type:      ContentTypeText,
		Content:   NewTextContent("are you there?"),
		ChannelID: "whatsapp-1",
		Fallback:  &Fallback{From: "sms-1", After: "5m"},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "fallback")
	assert.JSONEq(t, `{"from":"sms-1","after":"5m"}`, string(raw["fallback"]))
}

func TestConversationUpdateRequest(t *testing.T) {
	data, err := json.Marshal(ConversationUpdateRequest{Status: ConversationStatusArchived})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"archived"}`, string(data))
}
