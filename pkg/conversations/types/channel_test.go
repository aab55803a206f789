package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelStatusUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ChannelStatus
		wantErr bool
	}{
		{"inactive", `"inactive"`, ChannelStatusInactive, false},
		{"active", `"active"`, ChannelStatusActive, false},
		{"pending", `"pending"`, ChannelStatusPending, false},
		{"activation_required", `"activation_required"`, ChannelStatusActivationRequired, false},
		{"activation_code_required", `"activation_code_required"`, ChannelStatusActivationCodeRequired, false},
		{"activating", `"activating"`, ChannelStatusActivating, false},
		{"deleted", `"deleted"`, ChannelStatusDeleted, false},
		{"unknown value rejected", `"suspended"`, "", true},
		{"empty string rejected", `""`, "", true},
		{"non-string rejected", `42`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ChannelStatus
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

func TestChannelIsActive(t *testing.T) {
	active := Channel{ID: "chan-1", Status: ChannelStatusActive}
	assert.True(t, active.IsActive())

	for _, status := range []ChannelStatus{
		ChannelStatusInactive, ChannelStatusPending, ChannelStatusActivationRequired,
		ChannelStatusActivationCodeRequired, ChannelStatusActivating, ChannelStatusDeleted,
	} {
		c := Channel{ID: "chan-1", Status: status}
		assert.False(t, c.IsActive(), "status %s should not be active", status)
	}
}

func TestChannelListUnmarshal(t *testing.T) {
	payload := `{
		"offset": 0,
		"limit": 10,
		"count": 1,
		"totalCount": 1,
		"items": [
			{"id": "ch-1", "name": "sms-main", "platformId": "sms", "status": "active"}
		]
	}`

	var list ChannelList
	require.NoError(t, json.Unmarshal([]byte(payload), &list))
	assert.Equal(t, 1, list.TotalCount)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "sms", list.Items[0].PlatformID)
	assert.True(t, list.Items[0].IsActive())
}

func TestChannelUnmarshalRejectsBadStatusInList(t *testing.T) {
	payload := `{"items": [{"id": "ch-1", "status": "bogus"}]}`

	var list ChannelList
	err := json.Unmarshal([]byte(payload), &list)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown channel status")
}
