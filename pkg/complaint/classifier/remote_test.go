package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemote(fake *testutil.FakeLLM) *RemoteClassifier {
	if fake == nil {
		return NewRemoteClassifier(nil, NewHeuristic(nil), logger.NewNopLogger(), 0.1, 256)
	}
	return NewRemoteClassifier(fake, NewHeuristic(nil), logger.NewNopLogger(), 0.1, 256)
}

func TestRemoteClassifier_Success(t *testing.T) {
	fake := testutil.NewFakeLLM(validPayload)
	c := newRemote(fake)

	got := c.Classify(context.Background(), Input{
		Text:           "my parcel is a week late",
		ProfileSummary: "Customer Profile: 3 previous transactions",
		HistorySummary: "Recent transactions: Lamp - Late Delivery",
	})

	assert.Equal(t, entity.SourceRemote, got.Source)
	assert.Equal(t, entity.CategoryLateDelivery, got.Category)

	prompt := fake.LastPrompt()
	assert.Contains(t, prompt, "my parcel is a week late")
	assert.Contains(t, prompt, "Customer Profile: 3 previous transactions")
	assert.Contains(t, prompt, "Recent transactions: Lamp - Late Delivery")
	assert.Contains(t, prompt, `"Return Process Issue"`)
	require.Len(t, fake.Options, 1)
	assert.True(t, fake.Options[0].JSONMode)
	assert.Equal(t, 256, fake.Options[0].MaxTokens)
}

func TestRemoteClassifier_FallsBackToHeuristic(t *testing.T) {
	text := "My headphones arrived broken and I'm furious"

	tests := []struct {
		name  string
		fake  *testutil.FakeLLM
		cause string
	}{
		{name: "not configured", fake: nil, cause: "not configured"},
		{name: "network error", fake: &testutil.FakeLLM{Err: errors.New("dial tcp: connection refused")}, cause: "remote call failed"},
		{name: "prose reply", fake: testutil.NewFakeLLM("I think this is a damaged item."), cause: "remote output rejected"},
		{name: "schema violation", fake: testutil.NewFakeLLM(`{"is_actionable":true,"complaint_category":"Electronics"}`), cause: "remote output rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newRemote(tt.fake).Classify(context.Background(), Input{Text: text})

			assert.Equal(t, entity.SourceHeuristic, got.Source)
			assert.Equal(t, entity.CategoryDamagedItem, got.Category)
			assert.Equal(t, 100, got.RefundPercentage)
			assert.True(t, strings.HasPrefix(got.Reasoning, "Heuristic fallback"))
			assert.Contains(t, got.Reasoning, tt.cause)
		})
	}
}

func TestRemoteClassifier_ParseFailureIsNotRetried(t *testing.T) {
	fake := testutil.NewFakeLLM("not json")
	newRemote(fake).Classify(context.Background(), Input{Text: "where is my package"})
	assert.Equal(t, 1, fake.CallCount())
}

func TestRemoteClassifier_ShortTextNeverActionable(t *testing.T) {
	fake := testutil.NewFakeLLM(`{"is_actionable": true, "complaint_category": "Other", "info_complete": true}`)

	got := newRemote(fake).Classify(context.Background(), Input{Text: "  hi  "})

	assert.Equal(t, entity.SourceRemote, got.Source)
	assert.False(t, got.IsActionable)
	assert.Contains(t, got.Reasoning, "too short")
}

func TestRemoteClassifier_LongTextKeepsRemoteActionability(t *testing.T) {
	fake := testutil.NewFakeLLM(`{"is_actionable": true, "complaint_category": "Other"}`)

	got := newRemote(fake).Classify(context.Background(), Input{Text: "hello there"})

	assert.True(t, got.IsActionable)
}
