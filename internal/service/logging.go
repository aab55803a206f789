package service

// Standard structured logging field names. Use these exact names so log
// entries stay queryable across the application.
const (
	// Core identifiers
	LogFieldRequestID      = "request_id"
	LogFieldTraceID        = "trace_id"
	LogFieldMessageID      = "message_id"
	LogFieldConversationID = "conversation_id"
	LogFieldChannelID      = "channel_id"
	LogFieldWebhookID      = "webhook_id"
	LogFieldContactID      = "contact_id"

	// Message and event fields
	LogFieldEvent       = "event"
	LogFieldMessageType = "message_type"
	LogFieldDirection   = "direction"
	LogFieldStatus      = "status"

	// Network fields
	LogFieldMethod     = "method"
	LogFieldURL        = "url"
	LogFieldEndpoint   = "endpoint"
	LogFieldStatusCode = "status_code"
	LogFieldRemoteIP   = "remote_ip"

	// Performance fields
	LogFieldDuration = "duration_ms"
	LogFieldCount    = "count"
)
