// util/notification_service.go

package util

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
)

const webhookTimeout = 5 * time.Second

// webhookEnvelope is the payload POSTed to every configured webhook URL
type webhookEnvelope struct {
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	EventType string      `json:"event_type"`
	Service   string      `json:"service"`
	Data      interface{} `json:"data"`
}

// NotificationService delivers webhook notifications for domain events. It
// runs off the event bus, so delivery latency or failure never affects the
// HTTP response that triggered the event.
type NotificationService struct {
	mu     sync.RWMutex
	urls   []string
	client *http.Client
}

func NewNotificationService(urls []string) *NotificationService {
	return &NotificationService{
		urls:   append([]string(nil), urls...),
		client: &http.Client{Timeout: webhookTimeout},
	}
}

// Register subscribes the notifier to every domain event on the bus.
func (n *NotificationService) Register(eventBus *EventBus) {
	for _, eventType := range []string{EventUserRegistered, EventBookBorrowed, EventBookReturned} {
		eventBus.Subscribe(eventType, n.HandleEvent)
	}
}

// HandleEvent is the event-bus entry point.
func (n *NotificationService) HandleEvent(ctx context.Context, event Event) error {
	n.Notify(ctx, event.Type, event.Payload)
	return nil
}

// AddWebhookURL registers a delivery target.
func (n *NotificationService) AddWebhookURL(url string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, existing := range n.urls {
		if existing == url {
			return
		}
	}
	n.urls = append(n.urls, url)
	logger.Info("Added webhook URL", zap.String("url", url))
}

// RemoveWebhookURL deregisters a delivery target.
func (n *NotificationService) RemoveWebhookURL(url string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, existing := range n.urls {
		if existing == url {
			n.urls = append(n.urls[:i], n.urls[i+1:]...)
			logger.Info("Removed webhook URL", zap.String("url", url))
			return
		}
	}
}

// WebhookURLs returns the configured delivery targets.
func (n *NotificationService) WebhookURLs() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]string(nil), n.urls...)
}

// Notify posts the event to every configured URL. Failures are logged and
// swallowed; there is no retry.
func (n *NotificationService) Notify(ctx context.Context, eventType string, data interface{}) {
	urls := n.WebhookURLs()
	if len(urls) == 0 {
		return
	}

	// The publishing request is usually finished by the time the bus runs
	// this handler, and its context is canceled with it. Detach so delivery
	// is bounded only by the client timeout.
	ctx = context.WithoutCancel(ctx)

	envelope := webhookEnvelope{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		EventType: eventType,
		Service:   "library_api",
		Data:      data,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		logger.Error("Failed to marshal webhook payload", zap.Error(err), zap.String("eventType", eventType))
		return
	}

	for _, url := range urls {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			logger.Error("Failed to build webhook request", zap.Error(err), zap.String("url", url))
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			logger.Error("Webhook delivery failed", zap.Error(err), zap.String("url", url))
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			logger.Info("Webhook delivered",
				zap.String("url", url),
				zap.String("eventType", eventType))
		} else {
			logger.Warn("Webhook rejected",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode))
		}
	}
}
