package classifier

import (
	"context"
	"fmt"
	"strings"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/pkg/llm"
)

// Classifier turns a complaint into a Classification. Implementations never fail;
// they degrade to the heuristic instead.
type Classifier interface {
	Classify(ctx context.Context, in Input) entity.Classification
}

// RemoteClassifier asks a model for a strict JSON classification and falls back
// to the heuristic on any transport, parse or schema failure.
type RemoteClassifier struct {
	provider    llm.LLMProvider
	heuristic   *Heuristic
	logger      logger.ILogger
	temperature float64
	maxTokens   int
}

var _ Classifier = &RemoteClassifier{}

// NewRemoteClassifier accepts a nil provider, in which case every call uses the heuristic.
func NewRemoteClassifier(provider llm.LLMProvider, heuristic *Heuristic, log logger.ILogger, temperature float64, maxTokens int) *RemoteClassifier {
	return &RemoteClassifier{
		provider:    provider,
		heuristic:   heuristic,
		logger:      log,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (c *RemoteClassifier) Heuristic() *Heuristic {
	return c.heuristic
}

func (c *RemoteClassifier) Classify(ctx context.Context, in Input) entity.Classification {
	if c.provider == nil {
		return c.fallback(in.Text, "remote classifier not configured")
	}

	opts := []llm.Option{llm.WithJSONResponse(), llm.WithTemperature(c.temperature)}
	if c.maxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(c.maxTokens))
	}

	raw, err := c.provider.Chat(ctx, []llm.Message{
		{Role: "user", Content: buildPrompt(in)},
	}, opts...)
	if err != nil {
		c.logger.Warn("CLASSIFIER", "Remote classification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return c.fallback(in.Text, "remote call failed")
	}

	result, err := ParseClassification(raw)
	if err != nil {
		c.logger.Warn("CLASSIFIER", "Remote classification rejected", map[string]interface{}{
			"error":  err.Error(),
			"output": truncate(raw, 300),
		})
		return c.fallback(in.Text, "remote output rejected")
	}

	if result.IsActionable && c.heuristic.TooShort(in.Text) {
		result.IsActionable = false
		result.Reasoning = strings.TrimSpace(result.Reasoning + " Text too short to act on.")
	}
	return result
}

func (c *RemoteClassifier) fallback(text, cause string) entity.Classification {
	out := c.heuristic.Classify(text)
	out.Reasoning = fmt.Sprintf("Heuristic fallback (%s). %s", cause, out.Reasoning)
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
