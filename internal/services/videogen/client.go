package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL         = "https://api.aimlapi.com/v2"
	defaultModel           = "wan-ai/wan2.2-t2v"
	defaultHTTPTimeout     = 300 * time.Second
	defaultDownloadTimeout = 120 * time.Second

	// Fixed rendering parameters for short-form output.
	renderDurationSeconds = 10
	renderWidth           = 640
	renderHeight          = 360
	renderInferenceSteps  = 25

	maxVideoBytes = 256 << 20
)

// Config captures the runtime settings required to talk to the provider.
type Config struct {
	APIKey                 string
	BaseURL                string
	Model                  string
	TimeoutSeconds         int
	DownloadTimeoutSeconds int
}

// Client wraps the video generation API.
type Client struct {
	cfg             Config
	httpClient      *http.Client
	downloadTimeout time.Duration
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a video generation client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	downloadTimeout := defaultDownloadTimeout
	if cfg.DownloadTimeoutSeconds > 0 {
		downloadTimeout = time.Duration(cfg.DownloadTimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:                 strings.TrimSpace(cfg.APIKey),
			BaseURL:                strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:                  strings.TrimSpace(cfg.Model),
			TimeoutSeconds:         cfg.TimeoutSeconds,
			DownloadTimeoutSeconds: cfg.DownloadTimeoutSeconds,
		},
		httpClient:      &http.Client{Timeout: timeout},
		downloadTimeout: downloadTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

// Render submits the prompt with the fixed rendering parameters, waits for
// the provider to produce a video, and downloads the binary. It returns the
// raw bytes along with the provider's retrievable source URL.
func (c *Client) Render(ctx context.Context, prompt string) ([]byte, string, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, "", errors.New("videogen render: prompt required")
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, "", errors.New("videogen render: api key required")
	}

	sourceURL, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, "", err
	}
	data, err := c.download(ctx, sourceURL)
	if err != nil {
		return nil, sourceURL, err
	}
	return data, sourceURL, nil
}

// HealthCheck reports whether the client holds the credentials it needs.
func (c *Client) HealthCheck(ctx context.Context) error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return errors.New("videogen health: api key required")
	}
	return nil
}

type generationRequest struct {
	Model    string `json:"model"`
	Prompt   string `json:"prompt"`
	Duration int    `json:"duration"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Steps    int    `json:"num_inference_steps"`
}

type generationResponse struct {
	Video struct {
		URL string `json:"url"`
	} `json:"video"`
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	payload := generationRequest{
		Model:    c.cfg.Model,
		Prompt:   prompt,
		Duration: renderDurationSeconds,
		Width:    renderWidth,
		Height:   renderHeight,
		Steps:    renderInferenceSteps,
	}
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/videos/generations")
	if err != nil {
		return "", fmt.Errorf("videogen render: build url: %w", err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("videogen render: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("videogen render: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("videogen render: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("videogen render: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("videogen render: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var generation generationResponse
	if err := json.Unmarshal(body, &generation); err != nil {
		return "", fmt.Errorf("videogen render: decode response: %w", err)
	}
	if generation.Error != nil {
		return "", fmt.Errorf("videogen render: api error: %s", strings.TrimSpace(generation.Error.Message))
	}
	sourceURL := strings.TrimSpace(generation.Video.URL)
	if sourceURL == "" {
		sourceURL = strings.TrimSpace(generation.URL)
	}
	if sourceURL == "" {
		return "", errors.New("videogen render: response missing video url")
	}
	return sourceURL, nil
}

func (c *Client) download(ctx context.Context, sourceURL string) ([]byte, error) {
	downloadCtx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("videogen download: new request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("videogen download: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("videogen download: http %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxVideoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("videogen download: read body: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("videogen download: empty body")
	}
	if len(data) > maxVideoBytes {
		return nil, fmt.Errorf("videogen download: body exceeds %d bytes", maxVideoBytes)
	}
	return data, nil
}
