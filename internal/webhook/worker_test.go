package webhook

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/geo_checkin/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestWorker(cfg *config.Config) *WebhookWorker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	w := NewWebhookWorker(nil, logger, cfg)
	w.sleep = func(context.Context, time.Duration) {}
	return w
}

func TestProcessWebhookEvent_SignsPayload(t *testing.T) {
	payload := `{"type":"visit.confirmed","user_id":"user_123"}`
	var gotSignature, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Webhook-Signature")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		WebhookURL:        server.URL,
		WebhookSecret:     "secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
	})

	ok := worker.processWebhookEvent(context.Background(), WebhookEvent{Type: EventVisitConfirmed}, payload)
	assert.True(t, ok)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, generateHMACSHA256(payload, "secret"), gotSignature)
}

func TestProcessWebhookEvent_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		WebhookURL:        server.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	})

	assert.True(t, worker.processWebhookEvent(context.Background(), WebhookEvent{}, `{}`))
	assert.Equal(t, int32(3), calls.Load())
}

func TestProcessWebhookEvent_GivesUp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		WebhookURL:        server.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 2,
	})

	assert.False(t, worker.processWebhookEvent(context.Background(), WebhookEvent{}, `{}`))
	assert.Equal(t, int32(2), calls.Load())
}

func TestProcessWebhookEvent_NoURL(t *testing.T) {
	worker := newTestWorker(&config.Config{WebhookTimeout: time.Second})
	assert.False(t, worker.processWebhookEvent(context.Background(), WebhookEvent{}, `{}`))
}
