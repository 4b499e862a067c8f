package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reelsmith/internal/config"
	"reelsmith/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.TopicURL = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyRunCompleted(context.Background(), "topic", false); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceSendsRunCompleted(t *testing.T) {
	var gotTitle, gotTags, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.TopicURL = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.NotifyRunCompleted(context.Background(), "Why the sky is blue", true); err != nil {
		t.Fatalf("NotifyRunCompleted returned error: %v", err)
	}
	if gotTitle != "Reelsmith - Run Complete" {
		t.Fatalf("unexpected title: %q", gotTitle)
	}
	if gotTags != "reelsmith,run,completed" {
		t.Fatalf("unexpected tags: %q", gotTags)
	}
	if !strings.Contains(gotBody, "Video ready") {
		t.Fatalf("unexpected body: %q", gotBody)
	}
}

func TestNtfyServiceSendsFailureWithHighPriority(t *testing.T) {
	var gotPriority, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPriority = r.Header.Get("Priority")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.TopicURL = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.NotifyRunFailed(context.Background(), "topic", errors.New("boom")); err != nil {
		t.Fatalf("NotifyRunFailed returned error: %v", err)
	}
	if gotPriority != "high" {
		t.Fatalf("unexpected priority: %q", gotPriority)
	}
	if !strings.Contains(gotBody, "boom") {
		t.Fatalf("unexpected body: %q", gotBody)
	}
}

func TestNtfyServiceSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.TopicURL = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
