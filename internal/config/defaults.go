package config

// QualityPreset describes the model to use for a given quality tier.
type QualityPreset struct {
	Model string
}

var qualityPresets = map[ProviderType]map[QualityTier]QualityPreset{
	ProviderAnthropic: {
		QualityLite:   {Model: "claude-haiku-4-5-20251001"},
		QualityNormal: {Model: "claude-sonnet-4-5-20250929"},
		QualityMax:    {Model: "claude-sonnet-4-5-20250929"},
	},
	ProviderOpenAI: {
		QualityLite:   {Model: "gpt-4o-mini"},
		QualityNormal: {Model: "gpt-4o-mini"},
		QualityMax:    {Model: "gpt-4o"},
	},
	ProviderOpenRouter: {
		QualityLite:   {Model: "openai/gpt-4o-mini"},
		QualityNormal: {Model: "openai/gpt-4o-mini"},
		QualityMax:    {Model: "anthropic/claude-sonnet-4.5"},
	},
	ProviderOllama: {
		QualityLite:   {Model: "llama3"},
		QualityNormal: {Model: "llama3"},
		QualityMax:    {Model: "llama3:70b"},
	},
}

// DefaultConfig returns a Config with the coach's stock settings: gpt-4o-mini
// at temperature 0.7 with twelve turns of history.
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderOpenAI,
		Model:        "gpt-4o-mini",
		Quality:      QualityNormal,
		Temperature:  0.7,
		MaxTokens:    1024,
		DatabasePath: ".scenecoach/scenecoach.db",
		Server: ServerConfig{
			Port:               8080,
			AllowAllOrigins:    true,
			RequestTimeoutSecs: 120,
		},
		Coach: CoachConfig{
			HistoryLimit:       12,
			ThreadLimit:        50,
			NotesWindow:        1500,
			AttemptTimeoutSecs: 45,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// GetPreset returns the quality preset for the given provider and tier.
// Returns the Normal OpenAI preset if the combination is not found.
func GetPreset(provider ProviderType, tier QualityTier) QualityPreset {
	if tiers, ok := qualityPresets[provider]; ok {
		if preset, ok := tiers[tier]; ok {
			return preset
		}
	}
	return qualityPresets[ProviderOpenAI][QualityNormal]
}
