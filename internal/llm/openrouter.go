package llm

import "net/http"

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates a provider for OpenRouter, which speaks the
// OpenAI wire format.
func NewOpenRouterProvider(apiKey, model string, httpClient *http.Client) *OpenAIProvider {
	return newOpenAICompatible("openrouter", apiKey, openRouterBaseURL, model, httpClient)
}
