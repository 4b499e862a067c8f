package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	envTextGenAPIKey  = "REELSMITH_TEXTGEN_API_KEY"
	envVideoGenAPIKey = "REELSMITH_VIDEOGEN_API_KEY"
	// Honored as a fallback so existing OpenAI environments keep working.
	envOpenAIAPIKey = "OPENAI_API_KEY"
)

// ModeBrief and ModeRender are the two supported finalizer modes.
const (
	ModeBrief  = "brief"
	ModeRender = "render"
)

func (c *Config) normalize() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	c.Pipeline.Mode = strings.ToLower(strings.TrimSpace(c.Pipeline.Mode))
	c.Logging.Level = strings.TrimSpace(c.Logging.Level)
	c.Logging.Format = strings.TrimSpace(c.Logging.Format)
	c.Notifications.TopicURL = strings.TrimSpace(c.Notifications.TopicURL)

	c.TextGen.APIKey = strings.TrimSpace(c.TextGen.APIKey)
	if c.TextGen.APIKey == "" {
		c.TextGen.APIKey = strings.TrimSpace(os.Getenv(envTextGenAPIKey))
	}
	if c.TextGen.APIKey == "" {
		c.TextGen.APIKey = strings.TrimSpace(os.Getenv(envOpenAIAPIKey))
	}
	c.VideoGen.APIKey = strings.TrimSpace(c.VideoGen.APIKey)
	if c.VideoGen.APIKey == "" {
		c.VideoGen.APIKey = strings.TrimSpace(os.Getenv(envVideoGenAPIKey))
	}

	videosDir, err := expandPath(c.Paths.VideosDir)
	if err != nil {
		return fmt.Errorf("videos_dir: %w", err)
	}
	c.Paths.VideosDir = videosDir
	return nil
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.Server.Bind == "" {
		return fmt.Errorf("server.bind must not be empty")
	}
	if c.Paths.VideosDir == "" {
		return fmt.Errorf("paths.videos_dir must not be empty")
	}
	switch c.Pipeline.Mode {
	case ModeBrief, ModeRender:
	default:
		return fmt.Errorf("pipeline.mode must be %q or %q, got %q", ModeBrief, ModeRender, c.Pipeline.Mode)
	}
	if c.TextGen.TimeoutSeconds <= 0 {
		return fmt.Errorf("textgen.timeout_seconds must be positive")
	}
	if c.VideoGen.TimeoutSeconds <= 0 {
		return fmt.Errorf("videogen.timeout_seconds must be positive")
	}
	if c.VideoGen.DownloadTimeoutSeconds <= 0 {
		return fmt.Errorf("videogen.download_timeout_seconds must be positive")
	}
	if c.Pipeline.Mode == ModeRender && c.VideoGen.APIKey == "" {
		return fmt.Errorf("videogen.api_key (or %s) is required in render mode", envVideoGenAPIKey)
	}
	return nil
}
