package service

import (
	"context"
	"fmt"

	"chatwire/internal/metrics"
	"chatwire/internal/models"
	"chatwire/pkg/conversations/types"

	"github.com/sirupsen/logrus"
)

// EventStore is the persistence surface the event service needs
type EventStore interface {
	SaveMessage(ctx context.Context, record *models.MessageRecord) error
	UpdateMessageStatus(ctx context.Context, messageID, status string) error
	HasProcessedEvent(ctx context.Context, eventKey string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventKey string) (bool, error)
}

// EventService consumes verified platform webhook events
type EventService struct {
	store  EventStore
	logger *logrus.Logger
}

func NewEventService(store EventStore, logger *logrus.Logger) *EventService {
	return &EventService{
		store:  store,
		logger: logger,
	}
}

// HandleEvent processes a single webhook event. Duplicate deliveries of the
// same event are acknowledged without side effects.
func (s *EventService) HandleEvent(ctx context.Context, event *models.WebhookEvent) error {
	if event.Type == "" {
		return fmt.Errorf("webhook event has no type")
	}

	key := eventKey(event)
	seen, err := s.store.HasProcessedEvent(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check event: %w", err)
	}
	if seen {
		s.logger.WithFields(logrus.Fields{
			LogFieldEvent: string(event.Type),
		}).Debug("Skipping duplicate webhook event")
		metrics.IncrementCounter("webhook_events_duplicate", map[string]string{
			"type": string(event.Type),
		}, "Duplicate webhook events skipped")
		return nil
	}

	metrics.IncrementCounter("webhook_events_total", map[string]string{
		"type": string(event.Type),
	}, "Webhook events received by type")

	switch event.Type {
	case types.WebhookEventMessageCreated:
		err = s.handleMessageCreated(ctx, event)
	case types.WebhookEventMessageUpdated:
		err = s.handleMessageUpdated(ctx, event)
	case types.WebhookEventConversationCreated, types.WebhookEventConversationUpdated:
		err = s.handleConversationEvent(event)
	default:
		s.logger.WithFields(logrus.Fields{
			LogFieldEvent: string(event.Type),
		}).Warn("Ignoring unsupported webhook event type")
	}
	if err != nil {
		// Leave the event unmarked so a platform redelivery gets
		// another attempt
		return err
	}

	if _, err := s.store.MarkEventProcessed(ctx, key); err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

func (s *EventService) handleMessageCreated(ctx context.Context, event *models.WebhookEvent) error {
	msg := event.Message
	if msg == nil {
		return fmt.Errorf("message.created event without message payload")
	}

	record := &models.MessageRecord{
		MessageID:      msg.ID,
		ConversationID: msg.ConversationID,
		ChannelID:      msg.ChannelID,
		Direction:      string(msg.Direction),
		Status:         string(msg.Status),
		ContentType:    string(msg.Type),
		Body:           ContentSummary(&msg.Content),
	}

	if err := s.store.SaveMessage(ctx, record); err != nil {
		return fmt.Errorf("failed to persist message: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldMessageID:      msg.ID,
		LogFieldConversationID: msg.ConversationID,
		LogFieldMessageType:    string(msg.Type),
		LogFieldDirection:      string(msg.Direction),
	}).Info("Stored incoming message")
	return nil
}

func (s *EventService) handleMessageUpdated(ctx context.Context, event *models.WebhookEvent) error {
	msg := event.Message
	if msg == nil {
		return fmt.Errorf("message.updated event without message payload")
	}

	if err := s.store.UpdateMessageStatus(ctx, msg.ID, string(msg.Status)); err != nil {
		// Status updates can arrive for messages sent before this daemon
		// started tracking; store what we have instead of failing
		record := &models.MessageRecord{
			MessageID:      msg.ID,
			ConversationID: msg.ConversationID,
			ChannelID:      msg.ChannelID,
			Direction:      string(msg.Direction),
			Status:         string(msg.Status),
			ContentType:    string(msg.Type),
			Body:           ContentSummary(&msg.Content),
		}
		if saveErr := s.store.SaveMessage(ctx, record); saveErr != nil {
			return fmt.Errorf("failed to persist message status: %w", saveErr)
		}
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldMessageID: msg.ID,
		LogFieldStatus:    string(msg.Status),
	}).Info("Updated message status")
	return nil
}

func (s *EventService) handleConversationEvent(event *models.WebhookEvent) error {
	conv := event.Conversation
	if conv == nil {
		return fmt.Errorf("%s event without conversation payload", event.Type)
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldEvent:          string(event.Type),
		LogFieldConversationID: conv.ID,
		LogFieldContactID:      conv.ContactID,
		LogFieldStatus:         string(conv.Status),
	}).Info("Conversation lifecycle event")
	return nil
}

// eventKey builds the deduplication key for an event. The platform retries
// deliveries without a dedicated event id, so the key combines event type
// with the payload identity and its last-updated marker.
func eventKey(event *models.WebhookEvent) string {
	switch {
	case event.Message != nil:
		updated := ""
		if event.Message.UpdatedDatetime != nil {
			updated = event.Message.UpdatedDatetime.UTC().Format("2006-01-02T15:04:05Z")
		}
		return fmt.Sprintf("%s:%s:%s:%s", event.Type, event.Message.ID, event.Message.Status, updated)
	case event.Conversation != nil:
		updated := ""
		if event.Conversation.UpdatedDatetime != nil {
			updated = event.Conversation.UpdatedDatetime.UTC().Format("2006-01-02T15:04:05Z")
		}
		return fmt.Sprintf("%s:%s:%s:%s", event.Type, event.Conversation.ID, event.Conversation.Status, updated)
	default:
		return string(event.Type)
	}
}

// ContentSummary derives the stored body text from message content
func ContentSummary(content *types.MessageContent) string {
	switch {
	case content.Text != nil:
		return *content.Text
	case content.Image != nil:
		return summarizeMedia("image", content.Image)
	case content.Audio != nil:
		return summarizeMedia("audio", content.Audio)
	case content.Video != nil:
		return summarizeMedia("video", content.Video)
	case content.File != nil:
		return summarizeMedia("file", content.File)
	case content.Location != nil:
		return fmt.Sprintf("location: %f,%f", content.Location.Latitude, content.Location.Longitude)
	case content.Email != nil:
		return "email: " + content.Email.Subject
	case content.HSM != nil:
		return "hsm: " + content.HSM.TemplateName
	default:
		return ""
	}
}

func summarizeMedia(kind string, media *types.Media) string {
	if media.Caption != "" {
		return fmt.Sprintf("%s: %s (%s)", kind, media.Caption, media.URL)
	}
	return fmt.Sprintf("%s: %s", kind, media.URL)
}
