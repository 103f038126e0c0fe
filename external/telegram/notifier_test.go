package telegram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mzhadan/matchwatch/internal/platform/logging"
)

func newTestNotifier(t *testing.T, handler http.Handler) *Notifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewNotifier(NotifierConfig{
		BaseURL:  server.URL,
		BotToken: "test-token",
		Timeout:  2 * time.Second,
	}, logging.NewNop())
}

func TestSendMessage(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody string
	notifier := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	if err := notifier.SendMessage(context.Background(), 1001, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if !strings.Contains(gotBody, `"chat_id":1001`) || !strings.Contains(gotBody, `"text":"hello"`) {
		t.Fatalf("unexpected body: %s", gotBody)
	}
}

func TestSendMessageRetriesOnRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)

	notifier := NewNotifier(NotifierConfig{
		BaseURL:    server.URL,
		BotToken:   "test-token",
		Timeout:    2 * time.Second,
		MaxRetries: 1,
	}, logging.NewNop())

	if err := notifier.SendMessage(context.Background(), 1, "retry me"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one retry, got %d calls", calls.Load())
	}
}

func TestSendMessageClientErrorIsFatal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	notifier := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))

	err := notifier.SendMessage(context.Background(), 1, "no chat")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected upstream description in error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("client errors must not be retried, got %d calls", calls.Load())
	}
}

func TestBroadcastKeepsPerChatOrder(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	received := map[string][]string{}
	notifier := newTestNotifier(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		chatKey := "a"
		if strings.Contains(body, `"chat_id":2`) {
			chatKey = "b"
		}
		mu.Lock()
		received[chatKey] = append(received[chatKey], body)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	messages := []string{"first", "second", "third"}
	if err := notifier.Broadcast(context.Background(), []int64{1, 2}, messages); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	for chatKey, bodies := range received {
		if len(bodies) != len(messages) {
			t.Fatalf("chat %s got %d messages, want %d", chatKey, len(bodies), len(messages))
		}
		for i, want := range messages {
			if !strings.Contains(bodies[i], `"text":"`+want+`"`) {
				t.Fatalf("chat %s message %d out of order: %s", chatKey, i, bodies[i])
			}
		}
	}
	if len(received) != 2 {
		t.Fatalf("expected both chats to receive messages, got %d", len(received))
	}
}

func TestBroadcastNoChats(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier(NotifierConfig{BotToken: "t"}, logging.NewNop())
	if err := notifier.Broadcast(context.Background(), nil, []string{"x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
