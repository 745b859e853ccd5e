package resilient

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"solosolver-be/internal/pkg/logger"
	"solosolver-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedProvider struct {
	calls   atomic.Int32
	results []error
	block   bool
}

func (s *scriptedProvider) Chat(ctx context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	i := int(s.calls.Add(1)) - 1
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if i < len(s.results) && s.results[i] != nil {
		return "", s.results[i]
	}
	return "ok", nil
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, nil, opts...)
}

func fastConfig(retries int) Config {
	return Config{Name: "test", Timeout: 50 * time.Millisecond, MaxRetries: retries, InitialBackoff: time.Millisecond}
}

func TestProvider_RetryPolicy(t *testing.T) {
	tests := []struct {
		name      string
		results   []error
		retries   int
		wantCalls int32
		wantErr   bool
	}{
		{name: "first try", results: nil, retries: 1, wantCalls: 1},
		{name: "transport then ok", results: []error{errors.New("connection reset")}, retries: 1, wantCalls: 2},
		{name: "5xx twice exhausts", results: []error{&llm.StatusError{StatusCode: 502}, &llm.StatusError{StatusCode: 503}}, retries: 1, wantCalls: 2, wantErr: true},
		{name: "429 retried", results: []error{&llm.StatusError{StatusCode: 429}}, retries: 1, wantCalls: 2},
		{name: "4xx permanent", results: []error{&llm.StatusError{StatusCode: 400}}, retries: 1, wantCalls: 1, wantErr: true},
		{name: "empty permanent", results: []error{llm.ErrEmptyResponse}, retries: 3, wantCalls: 1, wantErr: true},
		{name: "no retries", results: []error{errors.New("reset")}, retries: 0, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &scriptedProvider{results: tt.results}
			p := Wrap(inner, fastConfig(tt.retries), logger.NewNopLogger())

			out, err := p.Generate(context.Background(), "x")

			assert.Equal(t, tt.wantCalls, inner.calls.Load())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ok", out)
		})
	}
}

func TestProvider_PermanentKeepsOriginalError(t *testing.T) {
	inner := &scriptedProvider{results: []error{&llm.StatusError{StatusCode: 401}}}
	p := Wrap(inner, fastConfig(1), logger.NewNopLogger())

	_, err := p.Chat(context.Background(), nil)

	var se *llm.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 401, se.StatusCode)
}

func TestProvider_PerAttemptTimeout(t *testing.T) {
	inner := &scriptedProvider{block: true}
	p := Wrap(inner, fastConfig(1), logger.NewNopLogger())

	start := time.Now()
	_, err := p.Generate(context.Background(), "x")

	require.Error(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Less(t, time.Since(start), 2*time.Second)
}
