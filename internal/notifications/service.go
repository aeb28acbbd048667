package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storyreel/internal/config"
	"storyreel/internal/textutil"
)

const userAgent = "Storyreel/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifyRunStarted(ctx context.Context, chapters int) error
	NotifyChapterCompleted(ctx context.Context, chapter string) error
	NotifyMergeCompleted(ctx context.Context, name string, chapters int, total time.Duration) error
	NotifyRenderCompleted(ctx context.Context, outputFile string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:     topic,
		client:       &http.Client{Timeout: timeout},
		chapters:     cfg.Notifications.Chapters,
		merge:        cfg.Notifications.Merge,
		errorsEnable: cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint     string
	client       *http.Client
	chapters     bool
	merge        bool
	errorsEnable bool
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, chapters int) error {
	if !n.chapters {
		return nil
	}
	data := payload{
		title:   "Storyreel - Run Started",
		message: fmt.Sprintf("Started processing %d chapters", chapters),
		tags:    []string{"storyreel", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyChapterCompleted(ctx context.Context, chapter string) error {
	if !n.chapters {
		return nil
	}
	data := payload{
		title:   "Storyreel - Chapter Complete",
		message: fmt.Sprintf("Chapter ready: %s", textutil.DisplayTitle(chapter)),
		tags:    []string{"storyreel", "chapter", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyMergeCompleted(ctx context.Context, name string, chapters int, total time.Duration) error {
	if !n.merge {
		return nil
	}
	total = total.Round(time.Second)
	if total < 0 {
		total = 0
	}
	data := payload{
		title:    "Storyreel - Merge Complete",
		message:  fmt.Sprintf("Merged %d chapters into %s (%s of narration)", chapters, strings.TrimSpace(name), total),
		tags:     []string{"storyreel", "merge", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRenderCompleted(ctx context.Context, outputFile string) error {
	if !n.merge {
		return nil
	}
	data := payload{
		title:   "Storyreel - Render Complete",
		message: fmt.Sprintf("Video ready: %s", strings.TrimSpace(outputFile)),
		tags:    []string{"storyreel", "render", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errorsEnable {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Storyreel - Error",
		message:  builder.String(),
		tags:     []string{"storyreel", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Storyreel - Test",
		message:  "Notification system test",
		tags:     []string{"storyreel", "test"},
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

func (noopService) NotifyRunStarted(context.Context, int) error          { return nil }
func (noopService) NotifyChapterCompleted(context.Context, string) error { return nil }
func (noopService) NotifyMergeCompleted(context.Context, string, int, time.Duration) error {
	return nil
}
func (noopService) NotifyRenderCompleted(context.Context, string) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error    { return nil }
func (noopService) TestNotification(context.Context) error              { return nil }
