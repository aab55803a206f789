package service

import (
	"context"
	"fmt"

	"chatwire/pkg/conversations"
	"chatwire/pkg/conversations/types"

	"github.com/sirupsen/logrus"
)

// subscribedEvents is the full set of events the daemon consumes
var subscribedEvents = []types.WebhookEventType{
	types.WebhookEventConversationCreated,
	types.WebhookEventConversationUpdated,
	types.WebhookEventMessageCreated,
	types.WebhookEventMessageUpdated,
}

// SubscriptionService keeps the platform webhook subscription pointed at
// this daemon
type SubscriptionService struct {
	client     conversations.Client
	webhookURL string
	channelID  string
	logger     *logrus.Logger
}

func NewSubscriptionService(client conversations.Client, webhookURL, channelID string, logger *logrus.Logger) *SubscriptionService {
	return &SubscriptionService{
		client:     client,
		webhookURL: webhookURL,
		channelID:  channelID,
		logger:     logger,
	}
}

// EnsureSubscription creates the webhook subscription if missing, and
// re-enables it when the platform has disabled it. Called on startup.
func (s *SubscriptionService) EnsureSubscription(ctx context.Context) (*types.Webhook, error) {
	if s.webhookURL == "" {
		s.logger.Warn("No webhook URL configured, skipping subscription setup")
		return nil, nil
	}

	list, err := s.client.ListWebhooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}

	for i := range list.Items {
		existing := &list.Items[i]
		if existing.URL != s.webhookURL {
			continue
		}

		if existing.Status == types.WebhookStatusEnabled && hasAllEvents(existing.Events) {
			s.logger.WithField(LogFieldWebhookID, existing.ID).Info("Webhook subscription already in place")
			return existing, nil
		}

		updated, err := s.client.UpdateWebhook(ctx, existing.ID, &types.WebhookUpdateRequest{
			Events: subscribedEvents,
			Status: types.WebhookStatusEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update webhook %s: %w", existing.ID, err)
		}

		s.logger.WithField(LogFieldWebhookID, updated.ID).Info("Re-enabled webhook subscription")
		return updated, nil
	}

	created, err := s.client.CreateWebhook(ctx, &types.WebhookCreateRequest{
		Events:    subscribedEvents,
		ChannelID: s.channelID,
		URL:       s.webhookURL,
		Status:    types.WebhookStatusEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldWebhookID: created.ID,
		LogFieldURL:       created.URL,
	}).Info("Created webhook subscription")
	return created, nil
}

func hasAllEvents(events []types.WebhookEventType) bool {
	have := make(map[types.WebhookEventType]bool, len(events))
	for _, e := range events {
		have[e] = true
	}
	for _, want := range subscribedEvents {
		if !have[want] {
			return false
		}
	}
	return true
}
