package migrations

// initialSchema is applied on startup; statements are idempotent so the
// daemon can be restarted against an existing database.
const initialSchema = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id TEXT NOT NULL UNIQUE,
	conversation_id TEXT NOT NULL,
	channel_id TEXT,
	direction TEXT NOT NULL,
	status TEXT NOT NULL,
	content_type TEXT NOT NULL,
	body TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id);
CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);

CREATE TABLE IF NOT EXISTS processed_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	event_key TEXT NOT NULL UNIQUE,
	received_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_processed_events_received_at ON processed_events(received_at);
`

// GetInitialSchema returns the initial database schema
func GetInitialSchema() string {
	return initialSchema
}
