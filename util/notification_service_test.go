// util/notification_service_test.go
package util

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	os.Exit(m.Run())
}

func TestWebhookDeliveredAfterPublishingContextCanceled(t *testing.T) {
	delivered := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		delivered <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bus := NewEventBus()
	notifier := NewNotificationService([]string{srv.URL})
	notifier.Register(bus)

	// The handler's request context dies as soon as the response is written;
	// delivery must survive that.
	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, EventBookBorrowed, map[string]interface{}{"borrowing_id": 1})
	cancel()

	select {
	case body := <-delivered:
		var envelope struct {
			ID        string `json:"id"`
			Timestamp string `json:"timestamp"`
			EventType string `json:"event_type"`
			Service   string `json:"service"`
		}
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.NotEmpty(t, envelope.ID)
		assert.NotEmpty(t, envelope.Timestamp)
		assert.Equal(t, EventBookBorrowed, envelope.EventType)
		assert.Equal(t, "library_api", envelope.Service)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not delivered")
	}
}

func TestNotifyWithoutURLsIsNoOp(t *testing.T) {
	notifier := NewNotificationService(nil)
	notifier.Notify(context.Background(), EventUserRegistered, nil)
	assert.Empty(t, notifier.WebhookURLs())
}

func TestAddAndRemoveWebhookURL(t *testing.T) {
	notifier := NewNotificationService(nil)

	notifier.AddWebhookURL("http://example.com/hook")
	notifier.AddWebhookURL("http://example.com/hook")
	assert.Equal(t, []string{"http://example.com/hook"}, notifier.WebhookURLs())

	notifier.RemoveWebhookURL("http://example.com/hook")
	assert.Empty(t, notifier.WebhookURLs())
}
