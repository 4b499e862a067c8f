package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reelsmith/internal/config"
)

const userAgent = "Reelsmith/0.1.0"

// Service defines the notification surface exposed to the pipeline.
type Service interface {
	NotifyRunCompleted(ctx context.Context, topic string, rendered bool) error
	NotifyRunFailed(ctx context.Context, topic string, runErr error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no topic URL is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	endpoint := strings.TrimSpace(cfg.Notifications.TopicURL)
	if endpoint == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, topic string, rendered bool) error {
	topic = strings.TrimSpace(topic)
	message := fmt.Sprintf("Brief ready: %s", topic)
	if rendered {
		message = fmt.Sprintf("Video ready: %s", topic)
	}
	data := payload{
		title:   "Reelsmith - Run Complete",
		message: message,
		tags:    []string{"reelsmith", "run", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, topic string, runErr error) error {
	var builder strings.Builder
	builder.WriteString("Run failed")
	if topic = strings.TrimSpace(topic); topic != "" {
		builder.WriteString(" for ")
		builder.WriteString(topic)
	}
	builder.WriteString(": ")
	if runErr != nil {
		builder.WriteString(strings.TrimSpace(runErr.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Reelsmith - Error",
		message:  builder.String(),
		tags:     []string{"reelsmith", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Reelsmith - Test",
		message:  "Notification system test",
		tags:     []string{"reelsmith", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, string, bool) error { return nil }
func (noopService) NotifyRunFailed(context.Context, string, error) error   { return nil }
func (noopService) TestNotification(context.Context) error                 { return nil }
