package config

const (
	defaultBind                    = "127.0.0.1:8321"
	defaultVideosDir               = "~/.local/share/reelsmith/videos"
	defaultTextGenBaseURL          = "https://api.openai.com/v1"
	defaultTextGenModel            = "gpt-4.1-mini"
	defaultTextGenTimeoutSeconds   = 120
	defaultVideoGenBaseURL         = "https://api.aimlapi.com/v2"
	defaultVideoGenModel           = "wan-ai/wan2.2-t2v"
	defaultVideoGenTimeoutSeconds  = 300
	defaultDownloadTimeoutSeconds  = 120
	defaultPipelineMode            = "brief"
	defaultLogLevel                = "info"
	defaultLogFormat               = "auto"
	defaultNotifyTimeoutSeconds    = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind: defaultBind,
		},
		Paths: Paths{
			VideosDir: defaultVideosDir,
		},
		TextGen: TextGen{
			BaseURL:        defaultTextGenBaseURL,
			Model:          defaultTextGenModel,
			TimeoutSeconds: defaultTextGenTimeoutSeconds,
		},
		VideoGen: VideoGen{
			BaseURL:                defaultVideoGenBaseURL,
			Model:                  defaultVideoGenModel,
			TimeoutSeconds:         defaultVideoGenTimeoutSeconds,
			DownloadTimeoutSeconds: defaultDownloadTimeoutSeconds,
		},
		Pipeline: Pipeline{
			Mode: defaultPipelineMode,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeoutSeconds,
		},
	}
}
