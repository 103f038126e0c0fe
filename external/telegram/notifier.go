// Package telegram delivers alert messages through the Telegram Bot API.
package telegram

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"

	"github.com/mzhadan/matchwatch/internal/platform/logging"
	"github.com/mzhadan/matchwatch/internal/platform/resilience"
)

// MaxMessageLength is the Telegram sendMessage payload ceiling the alert
// services chunk against.
const MaxMessageLength = 4000

const defaultBaseURL = "https://api.telegram.org"

var errTelegramTransient = crerr.New("telegram transient failure")

type NotifierConfig struct {
	BaseURL        string
	BotToken       string
	Timeout        time.Duration
	MaxRetries     int
	FanOutWorkers  int
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Notifier struct {
	client         *http.Client
	baseURL        string
	botToken       string
	maxRetries     int
	fanOutWorkers  int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewNotifier(cfg NotifierConfig, logger *logging.Logger) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	fanOutWorkers := cfg.FanOutWorkers
	if fanOutWorkers <= 0 {
		fanOutWorkers = 4
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Notifier{
		client:         &http.Client{Timeout: timeout},
		baseURL:        baseURL,
		botToken:       strings.TrimSpace(cfg.BotToken),
		maxRetries:     maxRetries,
		fanOutWorkers:  fanOutWorkers,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type sendMessagePayload struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// SendMessage posts one message to one chat.
func (n *Notifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	if n.circuitEnabled {
		if err := n.breaker.Allow(); err != nil {
			n.logger.WarnContext(ctx, "telegram circuit breaker rejected request", "state", n.breaker.State())
			return fmt.Errorf("telegram is temporarily unavailable: %w", err)
		}
	}

	if strings.TrimSpace(text) == "" {
		return crerr.New("message text is required")
	}
	if n.botToken == "" {
		return crerr.New("bot token is required")
	}

	body, err := sonic.Marshal(sendMessagePayload{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return crerr.Wrap(err, "marshal telegram payload")
	}

	sendURL := n.baseURL + "/bot" + n.botToken + "/sendMessage"
	curlPreview := buildSendCurlPreview(n.baseURL, chatID, truncateForLog(text, 512))
	n.logger.DebugContext(ctx, "telegram send request", "chat_id", chatID, "curl_preview", curlPreview)

	callErr := n.post(ctx, sendURL, body)
	n.recordCircuitResult(callErr)
	if callErr != nil {
		return callErr
	}

	n.logger.InfoContext(ctx, "telegram message sent", "chat_id", chatID, "length", len(text))
	return nil
}

// Broadcast delivers every message to every chat with a bounded worker pool.
// Messages within one chat stay ordered; chats are independent.
func (n *Notifier) Broadcast(ctx context.Context, chatIDs []int64, messages []string) error {
	if len(chatIDs) == 0 || len(messages) == 0 {
		return nil
	}

	workers := pool.New().
		WithErrors().
		WithContext(ctx).
		WithMaxGoroutines(n.fanOutWorkers)

	for _, chatID := range chatIDs {
		workers.Go(func(ctx context.Context) error {
			for _, message := range messages {
				if err := n.SendMessage(ctx, chatID, message); err != nil {
					return fmt.Errorf("broadcast to chat %d: %w", chatID, err)
				}
			}
			return nil
		})
	}

	return workers.Wait()
}

func (n *Notifier) post(ctx context.Context, sendURL string, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= n.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, strings.NewReader(string(body)))
		if err != nil {
			return crerr.Wrap(err, "create telegram request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send telegram request: %v", errTelegramTransient, err)
		} else {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			_ = resp.Body.Close()
			switch {
			case resp.StatusCode/100 == 2:
				return nil
			case isTelegramRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: telegram status=%d body=%s", errTelegramTransient, resp.StatusCode, strings.TrimSpace(string(raw)))
			default:
				return fmt.Errorf("telegram status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
			}
		}

		if attempt == n.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("telegram request failed")
	}
	return lastErr
}

func (n *Notifier) recordCircuitResult(err error) {
	if !n.circuitEnabled || n.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errTelegramTransient) {
		n.breaker.RecordFailure()
		return
	}
	n.breaker.RecordSuccess()
}

func isTelegramRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func buildSendCurlPreview(baseURL string, chatID int64, text string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(baseURL + "/bot***/sendMessage"))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(`{"chat_id":` + strconv.FormatInt(chatID, 10) + `,"text":` + strconv.Quote(text) + `}`))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
