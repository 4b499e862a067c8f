package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains the HTTP listener configuration.
type Server struct {
	Bind string `toml:"bind"`
}

// Paths contains directory configuration.
type Paths struct {
	VideosDir string `toml:"videos_dir"`
}

// TextGen contains connection settings for the text generation provider.
type TextGen struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// VideoGen contains connection settings for the video rendering provider.
type VideoGen struct {
	APIKey                 string `toml:"api_key"`
	BaseURL                string `toml:"base_url"`
	Model                  string `toml:"model"`
	TimeoutSeconds         int    `toml:"timeout_seconds"`
	DownloadTimeoutSeconds int    `toml:"download_timeout_seconds"`
}

// Pipeline contains workflow behavior configuration.
type Pipeline struct {
	// Mode selects the finalizer capability: "brief" produces a text
	// production brief, "render" calls the video provider.
	Mode string `toml:"mode"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Notifications contains webhook push notification settings.
type Notifications struct {
	TopicURL       string `toml:"topic_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Config encapsulates all configuration values for reelsmith.
type Config struct {
	Server        Server        `toml:"server"`
	Paths         Paths         `toml:"paths"`
	TextGen       TextGen       `toml:"textgen"`
	VideoGen      VideoGen      `toml:"videogen"`
	Pipeline      Pipeline      `toml:"pipeline"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the annotated sample configuration to the given path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves ~ and relative segments to an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelsmith/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and provider credentials resolved from
// the environment where the file leaves them unset.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelsmith.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path must not be empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		trimmed = filepath.Join(home, trimmed[2:])
	}
	return filepath.Abs(trimmed)
}
