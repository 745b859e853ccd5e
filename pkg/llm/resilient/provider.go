package resilient

import (
	"context"
	"errors"
	"time"

	"solosolver-be/internal/pkg/logger"
	"solosolver-be/pkg/llm"

	"github.com/cenkalti/backoff/v5"
)

// Config bounds every remote call. MaxRetries counts attempts after the first.
type Config struct {
	Name           string
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
}

// Provider wraps an LLMProvider with a per-attempt timeout and a bounded
// exponential retry on transport errors, 429 and 5xx.
type Provider struct {
	inner  llm.LLMProvider
	cfg    Config
	logger logger.ILogger
}

var _ llm.LLMProvider = &Provider{}

func Wrap(inner llm.LLMProvider, cfg Config, log logger.ILogger) *Provider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 500 * time.Millisecond
	}
	return &Provider{inner: inner, cfg: cfg, logger: log}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.do(ctx, func(attemptCtx context.Context) (string, error) {
		return p.inner.Chat(attemptCtx, history, options...)
	})
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.do(ctx, func(attemptCtx context.Context) (string, error) {
		return p.inner.Generate(attemptCtx, prompt, options...)
	})
}

func (p *Provider) do(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	attempt := 0
	op := func() (string, error) {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()

		out, err := call(attemptCtx)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.cfg.InitialBackoff
	eb.MaxInterval = 4 * p.cfg.InitialBackoff

	out, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(uint(p.cfg.MaxRetries+1)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			p.logger.Warn("LLM", "Remote call failed, retrying", map[string]interface{}{
				"provider": p.cfg.Name,
				"attempt":  attempt,
				"wait":     wait.String(),
				"error":    err.Error(),
			})
		}),
	)
	if err != nil {
		return "", err
	}
	return out, nil
}

func retryable(err error) bool {
	if errors.Is(err, llm.ErrEmptyResponse) {
		return false
	}
	var se *llm.StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return true
}
