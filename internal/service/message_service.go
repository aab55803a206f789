package service

import (
	"context"

	"chatwire/internal/errors"
	"chatwire/internal/metrics"
	"chatwire/internal/models"
	"chatwire/internal/privacy"
	"chatwire/internal/retry"
	"chatwire/pkg/circuitbreaker"
	"chatwire/pkg/conversations"
	"chatwire/pkg/conversations/types"

	"github.com/sirupsen/logrus"
)

// MessageService relays outbound messages to the conversations platform,
// retrying transient failures behind a circuit breaker
type MessageService struct {
	client           conversations.Client
	store            EventStore
	backoff          *retry.Backoff
	breaker          *circuitbreaker.CircuitBreaker
	defaultChannelID string
	logger           *logrus.Logger
}

func NewMessageService(client conversations.Client, store EventStore, backoff *retry.Backoff, breaker *circuitbreaker.CircuitBreaker, defaultChannelID string, logger *logrus.Logger) *MessageService {
	return &MessageService{
		client:           client,
		store:            store,
		backoff:          backoff,
		breaker:          breaker,
		defaultChannelID: defaultChannelID,
		logger:           logger,
	}
}

// Send relays a local send request to the platform. A request with a
// conversation id becomes a reply; one with a recipient starts a new
// conversation.
func (s *MessageService) Send(ctx context.Context, req *models.SendRequest) (*models.SendResult, error) {
	if err := req.Content.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidationFailed, "invalid message content")
	}

	channelID := req.ChannelID
	if channelID == "" {
		channelID = s.defaultChannelID
	}

	switch {
	case req.ConversationID != "":
		return s.reply(ctx, req, channelID)
	case req.To != "":
		return s.start(ctx, req, channelID)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "send request needs a conversationId or a recipient")
	}
}

func (s *MessageService) reply(ctx context.Context, req *models.SendRequest, channelID string) (*models.SendResult, error) {
	var message *types.Message

	err := s.callPlatform(ctx, "reply", func(ctx context.Context) error {
		var callErr error
		message, callErr = s.client.Reply(ctx, req.ConversationID, &types.ReplyRequest{
			Type:      req.Content.Type(),
			Content:   req.Content,
			ChannelID: channelID,
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}

	s.recordOutbound(ctx, message)

	return &models.SendResult{
		MessageID:      message.ID,
		ConversationID: req.ConversationID,
		Status:         string(message.Status),
	}, nil
}

func (s *MessageService) start(ctx context.Context, req *models.SendRequest, channelID string) (*models.SendResult, error) {
	if channelID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "send request needs a channelId and no default channel is configured")
	}

	var conversation *types.Conversation

	err := s.callPlatform(ctx, "start_conversation", func(ctx context.Context) error {
		var callErr error
		conversation, callErr = s.client.StartConversation(ctx, &types.StartConversationRequest{
			To:        req.To,
			ChannelID: channelID,
			Type:      req.Content.Type(),
			Content:   req.Content,
		})
		return callErr
	})
	if err != nil {
		return nil, err
	}

	result := &models.SendResult{
		ConversationID: conversation.ID,
		Status:         string(types.MessageStatusAccepted),
	}
	if conversation.Messages != nil {
		result.MessageID = conversation.Messages.LastMessageID
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldConversationID: conversation.ID,
		LogFieldChannelID:      channelID,
		"to":                   privacy.MaskRecipient(req.To),
	}).Info("Started conversation")

	return result, nil
}

// callPlatform wraps a platform call with retry and the circuit breaker
func (s *MessageService) callPlatform(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	err := s.backoff.RetryWithPredicate(ctx, func() error {
		return s.breaker.Execute(ctx, fn)
	}, isRetryablePlatformError)

	if err != nil {
		metrics.IncrementCounter("platform_calls_failed", map[string]string{
			"operation": operation,
		}, "Failed conversations platform calls")

		statusCode := 0
		if apiErr, ok := err.(*conversations.APIError); ok {
			statusCode = apiErr.StatusCode
		}
		return errors.NewAPIError(operation, statusCode, err)
	}

	metrics.IncrementCounter("platform_calls_total", map[string]string{
		"operation": operation,
	}, "Successful conversations platform calls")
	return nil
}

func (s *MessageService) recordOutbound(ctx context.Context, message *types.Message) {
	record := &models.MessageRecord{
		MessageID:      message.ID,
		ConversationID: message.ConversationID,
		ChannelID:      message.ChannelID,
		Direction:      string(types.MessageDirectionSent),
		Status:         string(message.Status),
		ContentType:    string(message.Type),
		Body:           ContentSummary(&message.Content),
	}

	if err := s.store.SaveMessage(ctx, record); err != nil {
		// The platform accepted the message; a bookkeeping failure must not
		// fail the send
		s.logger.WithError(err).WithField(LogFieldMessageID, message.ID).
			Warn("Failed to record sent message")
	}
}

func isRetryablePlatformError(err error) bool {
	if apiErr, ok := err.(*conversations.APIError); ok {
		return apiErr.IsRetryable()
	}
	// Breaker rejections and transport errors may clear up on their own
	return true
}
