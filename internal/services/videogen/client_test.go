package videogen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRenderGeneratesAndDownloads(t *testing.T) {
	payload := []byte("fake-mp4-bytes")
	mux := http.NewServeMux()
	var server *httptest.Server
	var captured generationRequest
	mux.HandleFunc("/videos/generations", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer vk" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"video": map[string]string{"url": server.URL + "/files/out.mp4"},
		})
	})
	mux.HandleFunc("/files/out.mp4", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(Config{APIKey: "vk", BaseURL: server.URL, Model: "demo-t2v"})
	data, sourceURL, err := client.Render(context.Background(), "a serene mountain lake at dawn")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("downloaded bytes mismatch: %q", data)
	}
	if sourceURL != server.URL+"/files/out.mp4" {
		t.Fatalf("unexpected source url: %q", sourceURL)
	}
	if captured.Duration != 10 || captured.Width != 640 || captured.Height != 360 {
		t.Fatalf("unexpected render parameters: %+v", captured)
	}
	if captured.Steps != renderInferenceSteps {
		t.Fatalf("unexpected inference steps: %d", captured.Steps)
	}
}

func TestRenderRequiresPrompt(t *testing.T) {
	client := NewClient(Config{APIKey: "vk"})
	if _, _, err := client.Render(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestRenderRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	if _, _, err := client.Render(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestRenderPropagatesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("overloaded"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "vk", BaseURL: server.URL})
	if _, _, err := client.Render(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestRenderRejectsMissingVideoURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "vk", BaseURL: server.URL})
	if _, _, err := client.Render(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for response without video url")
	}
}

func TestRenderDownloadFailureKeepsSourceURL(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/videos/generations", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"video": map[string]string{"url": server.URL + "/files/missing.mp4"},
		})
	})
	mux.HandleFunc("/files/missing.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(Config{APIKey: "vk", BaseURL: server.URL})
	_, sourceURL, err := client.Render(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected download error")
	}
	if sourceURL == "" {
		t.Fatal("expected source url to survive download failure")
	}
}
