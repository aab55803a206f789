package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"chatwire/internal/migrations"
	"chatwire/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db        *sql.DB
	encryptor *encryptor
}

func New(dbPath string) (*Database, error) {
	if len(dbPath) == 0 || dbPath[0] == '\x00' {
		return nil, fmt.Errorf("invalid database path")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(migrations.GetInitialSchema()); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	encryptor, err := NewEncryptor()
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize encryptor: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize encryptor: %w", err)
	}

	return &Database{db: db, encryptor: encryptor}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// SaveMessage inserts a message record, updating status on conflict
func (d *Database) SaveMessage(ctx context.Context, record *models.MessageRecord) error {
	encryptedBody, err := d.encryptor.Encrypt(record.Body)
	if err != nil {
		return fmt.Errorf("failed to encrypt message body: %w", err)
	}

	_, err = d.db.ExecContext(ctx, insertMessageQuery,
		record.MessageID, record.ConversationID, record.ChannelID,
		record.Direction, record.Status, record.ContentType, encryptedBody)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// GetMessage fetches a message record by its platform message id; returns
// nil when not found
func (d *Database) GetMessage(ctx context.Context, messageID string) (*models.MessageRecord, error) {
	row := d.db.QueryRowContext(ctx, selectMessageByIDQuery, messageID)

	record, err := d.scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return record, nil
}

// GetMessagesByConversation returns the most recent records for a
// conversation, newest first
func (d *Database) GetMessagesByConversation(ctx context.Context, conversationID string, limit int) ([]models.MessageRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.db.QueryContext(ctx, selectMessagesByConversationQuery, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var records []models.MessageRecord
	for rows.Next() {
		record, err := d.scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// UpdateMessageStatus sets the delivery status of a stored message
func (d *Database) UpdateMessageStatus(ctx context.Context, messageID, status string) error {
	result, err := d.db.ExecContext(ctx, updateMessageStatusQuery, status, messageID)
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkEventProcessed records an event key for deduplication. It returns true
// when the event was not seen before.
func (d *Database) MarkEventProcessed(ctx context.Context, eventKey string) (bool, error) {
	result, err := d.db.ExecContext(ctx, insertProcessedEventQuery, eventKey)
	if err != nil {
		return false, fmt.Errorf("failed to mark event processed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}
	return affected > 0, nil
}

// HasProcessedEvent reports whether an event key was already recorded
func (d *Database) HasProcessedEvent(ctx context.Context, eventKey string) (bool, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, selectProcessedEventQuery, eventKey).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check processed event: %w", err)
	}
	return count > 0, nil
}

// CleanupOldRecords deletes messages and processed events older than the
// retention window
func (d *Database) CleanupOldRecords(ctx context.Context, retentionDays int) error {
	if retentionDays <= 0 {
		return fmt.Errorf("invalid retention days: %d", retentionDays)
	}

	if _, err := d.db.ExecContext(ctx, deleteOldMessagesQuery, retentionDays); err != nil {
		return fmt.Errorf("failed to delete old messages: %w", err)
	}
	if _, err := d.db.ExecContext(ctx, deleteOldProcessedEventsQuery, retentionDays); err != nil {
		return fmt.Errorf("failed to delete old processed events: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (d *Database) scanMessage(row rowScanner) (*models.MessageRecord, error) {
	var record models.MessageRecord
	var channelID, body sql.NullString
	var createdAt, updatedAt time.Time

	err := row.Scan(&record.ID, &record.MessageID, &record.ConversationID,
		&channelID, &record.Direction, &record.Status, &record.ContentType,
		&body, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.ChannelID = channelID.String
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt

	decryptedBody, err := d.encryptor.Decrypt(body.String)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt message body: %w", err)
	}
	record.Body = decryptedBody

	return &record, nil
}
