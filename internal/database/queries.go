package database

// Message queries
const (
	insertMessageQuery = `
		INSERT INTO messages (
			message_id, conversation_id, channel_id, direction, status,
			content_type, body
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(message_id) DO UPDATE SET
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`

	selectMessageByIDQuery = `
		SELECT id, message_id, conversation_id, channel_id, direction,
		       status, content_type, body, created_at, updated_at
		FROM messages
		WHERE message_id = ?
	`

	selectMessagesByConversationQuery = `
		SELECT id, message_id, conversation_id, channel_id, direction,
		       status, content_type, body, created_at, updated_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	updateMessageStatusQuery = `
		UPDATE messages
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE message_id = ?
	`

	deleteOldMessagesQuery = `
		DELETE FROM messages
		WHERE created_at < datetime('now', '-' || ? || ' days')
	`
)

// Processed event queries
const (
	insertProcessedEventQuery = `
		INSERT OR IGNORE INTO processed_events (event_key) VALUES (?)
	`

	selectProcessedEventQuery = `
		SELECT COUNT(1) FROM processed_events WHERE event_key = ?
	`

	deleteOldProcessedEventsQuery = `
		DELETE FROM processed_events
		WHERE received_at < datetime('now', '-' || ? || ' days')
	`
)
