package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"solosolver-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProvider_Chat(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Dear "},{"text":"customer"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", srv.URL, "gemini-test")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be formal"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	}, llm.WithJSONResponse(), llm.WithTemperature(0.2))

	require.NoError(t, err)
	assert.Equal(t, "Dear customer", out)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be formal", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 2)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
}

func TestGeminiProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "status",
			status: http.StatusServiceUnavailable,
			body:   `{"error":"overloaded"}`,
			check: func(t *testing.T, err error) {
				var se *llm.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, 503, se.StatusCode)
			},
		},
		{
			name:   "no candidates",
			status: http.StatusOK,
			body:   `{"candidates":[]}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, llm.ErrEmptyResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGeminiProvider("k", srv.URL, "m").Generate(context.Background(), "x")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}
