package factory

import (
	"fmt"

	"solosolver-be/pkg/llm"
	"solosolver-be/pkg/llm/gemini"
	"solosolver-be/pkg/llm/huggingface"
	"solosolver-be/pkg/llm/ollama"
)

// NewLLMProvider builds a provider by name. An empty or "none" provider
// returns (nil, nil) so callers can run without that remote stage.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "", "none":
		return nil, nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		return gemini.NewGeminiProvider(apiKey, baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
