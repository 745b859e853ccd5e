package response

import (
	"context"
	"fmt"
	"strings"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/pkg/complaint/grounding"
	"solosolver-be/pkg/llm"
)

// Request is everything the generator needs for one reply.
type Request struct {
	ComplaintText string
	ChatHistory   []entity.ChatTurn
	Context       *grounding.PipelineContext
}

type Result struct {
	ResponseText        string
	GenerationReasoning string
	Branch              Branch
	Fallback            bool
}

// Generator writes the customer-facing reply. It never returns an error: any
// provider failure or blank reply is replaced by a static template.
type Generator struct {
	provider    llm.LLMProvider
	greeter     Greeter
	logger      logger.ILogger
	historyTail int
	temperature float64
	maxTokens   int
}

// NewGenerator accepts a nil provider, in which case every reply is a template.
func NewGenerator(provider llm.LLMProvider, greeter Greeter, log logger.ILogger, historyTail int, temperature float64, maxTokens int) *Generator {
	return &Generator{
		provider:    provider,
		greeter:     greeter,
		logger:      log,
		historyTail: historyTail,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (g *Generator) Generate(ctx context.Context, req Request) Result {
	var c entity.Classification
	if req.Context != nil {
		c = req.Context.Classification
	}
	branch := SelectBranch(req.ComplaintText, c, g.greeter)

	if g.provider == nil {
		return g.fallback(branch, c, "generator not configured")
	}

	opts := []llm.Option{llm.WithTemperature(g.temperature)}
	if g.maxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(g.maxTokens))
	}

	text, err := g.provider.Chat(ctx, buildMessages(req, branch, g.historyTail), opts...)
	if err != nil {
		g.logger.Warn("GENERATOR", "Remote generation failed", map[string]interface{}{
			"branch": string(branch),
			"error":  err.Error(),
		})
		return g.fallback(branch, c, "remote call failed")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		g.logger.Warn("GENERATOR", "Remote generation returned blank text", map[string]interface{}{
			"branch": string(branch),
		})
		return g.fallback(branch, c, "blank reply")
	}

	return Result{
		ResponseText:        text,
		GenerationReasoning: reasoning(branch, c, false, ""),
		Branch:              branch,
	}
}

func (g *Generator) fallback(branch Branch, c entity.Classification, cause string) Result {
	return Result{
		ResponseText:        Template(branch, c.Category),
		GenerationReasoning: reasoning(branch, c, true, cause),
		Branch:              branch,
		Fallback:            true,
	}
}

func reasoning(branch Branch, c entity.Classification, template bool, cause string) string {
	source := string(c.Source)
	if source == "" {
		source = "unknown"
	}
	out := fmt.Sprintf("branch=%s classification_source=%s template=%t", branch, source, template)
	if cause != "" {
		out += " cause=" + cause
	}
	return out
}
