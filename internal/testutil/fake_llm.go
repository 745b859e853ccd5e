package testutil

import (
	"context"
	"sync"

	"solosolver-be/pkg/llm"
)

// FakeLLM is a scripted llm.LLMProvider. Replies are consumed in order; the last
// one repeats. Err, when set, is returned instead of any reply.
type FakeLLM struct {
	mu sync.Mutex

	Replies []string
	Err     error

	Calls    int
	Messages [][]llm.Message
	Options  []*llm.Options
}

func NewFakeLLM(replies ...string) *FakeLLM {
	return &FakeLLM{Replies: replies}
}

func (f *FakeLLM) Chat(_ context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls++
	f.Messages = append(f.Messages, history)
	f.Options = append(f.Options, llm.ApplyOptions(llm.Options{}, opts...))

	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Replies) == 0 {
		return "", llm.ErrEmptyResponse
	}
	idx := f.Calls - 1
	if idx >= len(f.Replies) {
		idx = len(f.Replies) - 1
	}
	return f.Replies[idx], nil
}

func (f *FakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// LastPrompt returns the concatenated content of the most recent call.
func (f *FakeLLM) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Messages) == 0 {
		return ""
	}
	out := ""
	for _, m := range f.Messages[len(f.Messages)-1] {
		out += m.Content + "\n"
	}
	return out
}

func (f *FakeLLM) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}
