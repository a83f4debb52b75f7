package llm

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// Options tune how providers are constructed.
type Options struct {
	// Timeout bounds a single HTTP round trip to the provider. Zero leaves
	// the client without a timeout.
	Timeout time.Duration
	// RequestsPerMinute wraps the provider in a rate limiter when positive.
	RequestsPerMinute int
}

// NewProvider creates a provider by name, reading credentials from the
// conventional environment variables. Supported names: openai, openrouter,
// anthropic, ollama.
func NewProvider(providerType, model string, opts Options) (Provider, error) {
	httpClient := &http.Client{Timeout: opts.Timeout}

	var p Provider
	switch providerType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		p = NewOpenAIProvider(apiKey, model, httpClient)

	case "openrouter":
		apiKey := os.Getenv("OPENROUTER_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
		}
		p = NewOpenRouterProvider(apiKey, model, httpClient)

	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		p = NewAnthropicProvider(apiKey, model, httpClient)

	case "ollama":
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		p = NewOllamaProvider(host, model, httpClient)

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}

	if opts.RequestsPerMinute > 0 {
		p = NewRateLimitedProvider(p, opts.RequestsPerMinute)
	}
	return p, nil
}
