package conversations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chatwire/pkg/conversations/types"

	"github.com/sirupsen/logrus"
)

type ConversationsClient struct {
	baseURL   string
	accessKey string
	client    *http.Client
	logger    *logrus.Logger
}

// NewClient creates a conversations API client. A nil httpClient gets a
// default with a 30 second timeout.
func NewClient(baseURL, accessKey string, httpClient *http.Client) Client {
	return NewClientWithLogger(baseURL, accessKey, httpClient, nil)
}

func NewClientWithLogger(baseURL, accessKey string, httpClient *http.Client, logger *logrus.Logger) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	return &ConversationsClient{
		baseURL:   baseURL,
		accessKey: accessKey,
		client:    httpClient,
		logger:    logger,
	}
}

func (c *ConversationsClient) StartConversation(ctx context.Context, req *types.StartConversationRequest) (*types.Conversation, error) {
	if err := req.Content.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}

	var conversation types.Conversation
	if err := c.doRequest(ctx, http.MethodPost, "/v1/conversations/start", req, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (c *ConversationsClient) ListConversations(ctx context.Context, offset, limit int) (*types.ConversationList, error) {
	endpoint := fmt.Sprintf("/v1/conversations?offset=%d&limit=%d", offset, limit)

	var list types.ConversationList
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *ConversationsClient) GetConversation(ctx context.Context, conversationID string) (*types.Conversation, error) {
	endpoint := "/v1/conversations/" + url.PathEscape(conversationID)

	var conversation types.Conversation
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (c *ConversationsClient) UpdateConversation(ctx context.Context, conversationID string, req *types.ConversationUpdateRequest) (*types.Conversation, error) {
	endpoint := "/v1/conversations/" + url.PathEscape(conversationID)

	var conversation types.Conversation
	if err := c.doRequest(ctx, http.MethodPatch, endpoint, req, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (c *ConversationsClient) Reply(ctx context.Context, conversationID string, req *types.ReplyRequest) (*types.Message, error) {
	if err := req.Content.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}

	endpoint := "/v1/conversations/" + url.PathEscape(conversationID) + "/messages"

	var message types.Message
	if err := c.doRequest(ctx, http.MethodPost, endpoint, req, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *ConversationsClient) ListMessages(ctx context.Context, conversationID string, offset, limit int) (*types.MessageList, error) {
	endpoint := fmt.Sprintf("/v1/conversations/%s/messages?offset=%d&limit=%d",
		url.PathEscape(conversationID), offset, limit)

	var list types.MessageList
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *ConversationsClient) GetMessage(ctx context.Context, messageID string) (*types.Message, error) {
	endpoint := "/v1/messages/" + url.PathEscape(messageID)

	var message types.Message
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *ConversationsClient) SendMessage(ctx context.Context, req *types.SendMessageRequest) (*types.SendMessageResponse, error) {
	if err := req.Content.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}

	var response types.SendMessageResponse
	if err := c.doRequest(ctx, http.MethodPost, "/v1/send", req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *ConversationsClient) ListChannels(ctx context.Context) (*types.ChannelList, error) {
	var list types.ChannelList
	if err := c.doRequest(ctx, http.MethodGet, "/v1/channels", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *ConversationsClient) GetChannel(ctx context.Context, channelID string) (*types.Channel, error) {
	endpoint := "/v1/channels/" + url.PathEscape(channelID)

	var channel types.Channel
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

func (c *ConversationsClient) CreateWebhook(ctx context.Context, req *types.WebhookCreateRequest) (*types.Webhook, error) {
	var webhook types.Webhook
	if err := c.doRequest(ctx, http.MethodPost, "/v1/webhooks", req, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

func (c *ConversationsClient) ListWebhooks(ctx context.Context) (*types.WebhookList, error) {
	var list types.WebhookList
	if err := c.doRequest(ctx, http.MethodGet, "/v1/webhooks", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *ConversationsClient) GetWebhook(ctx context.Context, webhookID string) (*types.Webhook, error) {
	endpoint := "/v1/webhooks/" + url.PathEscape(webhookID)

	var webhook types.Webhook
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

func (c *ConversationsClient) UpdateWebhook(ctx context.Context, webhookID string, req *types.WebhookUpdateRequest) (*types.Webhook, error) {
	endpoint := "/v1/webhooks/" + url.PathEscape(webhookID)

	var webhook types.Webhook
	if err := c.doRequest(ctx, http.MethodPatch, endpoint, req, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

func (c *ConversationsClient) DeleteWebhook(ctx context.Context, webhookID string) error {
	endpoint := "/v1/webhooks/" + url.PathEscape(webhookID)
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *ConversationsClient) doRequest(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
	}).Debug("Sending conversations API request")

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "AccessKey "+c.accessKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr == nil {
			// Best effort decode; the status code alone is still a usable error
			_ = json.Unmarshal(bodyBytes, apiErr)
		}

		c.logger.WithFields(logrus.Fields{
			"method":   method,
			"endpoint": endpoint,
			"status":   resp.StatusCode,
		}).Error("Conversations API returned error status")

		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
