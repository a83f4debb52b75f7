package config

// QualityTier picks the model preset for a provider, trading speed and cost
// against quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderOllama     ProviderType = "ollama"
)

// Config is the top-level scenecoach configuration, corresponding to
// .scenecoach.yml.
type Config struct {
	Provider     ProviderType  `yaml:"provider" koanf:"provider"`
	Model        string        `yaml:"model" koanf:"model"`
	Quality      QualityTier   `yaml:"quality" koanf:"quality"`
	Temperature  float64       `yaml:"temperature" koanf:"temperature"`
	MaxTokens    int           `yaml:"max_tokens" koanf:"max_tokens"`
	DatabasePath string        `yaml:"database_path" koanf:"database_path"`
	Server       ServerConfig  `yaml:"server" koanf:"server"`
	Coach        CoachConfig   `yaml:"coach" koanf:"coach"`
	Logging      LoggingConfig `yaml:"logging" koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               int  `yaml:"port" koanf:"port"`
	AllowAllOrigins    bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequestTimeoutSecs int  `yaml:"request_timeout_secs" koanf:"request_timeout_secs"`
}

// CoachConfig tunes a coaching turn.
type CoachConfig struct {
	// HistoryLimit is how many recent thread turns are sent with a request.
	HistoryLimit int `yaml:"history_limit" koanf:"history_limit"`
	// ThreadLimit is the default page size of the thread endpoint.
	ThreadLimit int `yaml:"thread_limit" koanf:"thread_limit"`
	// NotesWindow caps the stored profile notes, in characters.
	NotesWindow int `yaml:"notes_window" koanf:"notes_window"`
	// AttemptTimeoutSecs bounds a single model call. Zero disables it.
	AttemptTimeoutSecs int `yaml:"attempt_timeout_secs" koanf:"attempt_timeout_secs"`
	// RateLimitRPM caps model calls per minute across all requests. Zero
	// disables limiting.
	RateLimitRPM int `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
}

// LoggingConfig selects the zap logger flavour.
type LoggingConfig struct {
	Level string `yaml:"level" koanf:"level"`
	JSON  bool   `yaml:"json" koanf:"json"`
}
