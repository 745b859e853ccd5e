package classifier

import (
	"testing"

	"solosolver-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestHeuristic_Categories(t *testing.T) {
	h := NewHeuristic(nil)

	tests := []struct {
		name       string
		text       string
		category   entity.ComplaintCategory
		decision   entity.Decision
		refund     int
		actionable bool
	}{
		{"sizing", "These jeans are too small for me", entity.CategorySizingIssue, entity.DecisionExchangeOffered, 0, true},
		{"damage", "The vase was damaged when I opened it", entity.CategoryDamagedItem, entity.DecisionFullRefundWithReturn, 100, true},
		{"defective", "Arrived defective out of the box", entity.CategoryDamagedItem, entity.DecisionFullRefundWithReturn, 100, true},
		{"shipping", "My package is still not delivered", entity.CategoryShippingProblem, entity.DecisionFurtherInformationRequired, 25, true},
		{"returns", "How do I get a refund for this order?", entity.CategoryReturnProcessIssue, entity.DecisionProvidePolicyInformation, 0, true},
		{"long unmatched", "I am not satisfied with what I got from you at all", entity.CategoryQualityIssue, entity.DecisionFurtherInformationRequired, 25, false},
		{"short unmatched", "meh", entity.CategoryOther, entity.DecisionProvidePolicyInformation, 0, false},
		{"priority sizing over damage", "Wrong size and the zipper is broken", entity.CategorySizingIssue, entity.DecisionExchangeOffered, 0, true},
		{"priority damage over shipping", "The package came and the lamp was cracked", entity.CategoryDamagedItem, entity.DecisionFullRefundWithReturn, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Classify(tt.text)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.decision, got.RecommendedDecision)
			assert.Equal(t, tt.refund, got.RefundPercentage)
			assert.Equal(t, tt.actionable, got.IsActionable)
			assert.Equal(t, entity.SourceHeuristic, got.Source)
			assert.NotEmpty(t, got.Reasoning)
		})
	}
}

func TestHeuristic_ShortTextNeverActionable(t *testing.T) {
	h := NewHeuristic(nil)

	for _, text := range []string{"", "hi", "broken", "refund!!", "  size    "} {
		got := h.Classify(text)
		assert.False(t, got.IsActionable, "text %q", text)
		assert.False(t, got.InfoComplete, "text %q", text)
	}
}

func TestHeuristic_DamageAlwaysFullRefund(t *testing.T) {
	h := NewHeuristic(nil)

	for _, text := range []string{
		"it arrived damaged",
		"the screen is broken",
		"there is a defect in the stitching",
	} {
		got := h.Classify(text)
		assert.Equal(t, entity.CategoryDamagedItem, got.Category, text)
		assert.Equal(t, 100, got.RefundPercentage, text)
		assert.Equal(t, entity.ToneUnderstandingApologetic, got.Tone, text)
	}
}

func TestHeuristic_KeywordsMatchWholeWords(t *testing.T) {
	h := NewHeuristic(nil)

	for _, text := range []string{
		"My fitness tracker arrived broken",
		"My Fitbit screen is cracked and defective",
		"The tights I ordered arrived torn and damaged",
		"The oversized loosely woven basket came shattered",
	} {
		got := h.Classify(text)
		assert.Equal(t, entity.CategoryDamagedItem, got.Category, text)
		assert.Equal(t, 100, got.RefundPercentage, text)
	}
}

func TestHeuristic_StemsMatchInflections(t *testing.T) {
	h := NewHeuristic(nil)

	got := h.Classify("So frustrating, the delivery is late")
	assert.Equal(t, entity.SentimentNegative, got.Sentiment)

	got = h.Classify("Thanks, the delivery was quick")
	assert.Equal(t, entity.SentimentPositive, got.Sentiment)
}

func TestCompileGroup_SkipsBareWildcard(t *testing.T) {
	g := compileGroup("x", []string{"*", "  ", "fit"}, groupOutcome{})

	assert.Equal(t, []string{"fit"}, g.words)
	assert.Empty(t, g.matches("fitness"))
	assert.Equal(t, []string{"fit"}, g.matches("does not fit"))
}

func TestHeuristic_HeadphonesScenario(t *testing.T) {
	got := NewHeuristic(nil).Classify("My headphones arrived broken and I'm furious")

	assert.Equal(t, entity.CategoryDamagedItem, got.Category)
	assert.Equal(t, 100, got.RefundPercentage)
	assert.Equal(t, entity.SentimentNegative, got.Sentiment)
	assert.GreaterOrEqual(t, got.Aggression.Rank(), entity.AggressionLow.Rank())
	assert.True(t, got.IsActionable)
	assert.True(t, got.InfoComplete)
}

func TestHeuristic_SentimentAndAggression(t *testing.T) {
	h := NewHeuristic(nil)

	tests := []struct {
		name       string
		text       string
		sentiment  entity.Sentiment
		aggression entity.Aggression
	}{
		{"neutral", "The shirt does not fit", entity.SentimentNeutral, entity.AggressionNone},
		{"disappointed", "Really disappointed, the shirt does not fit", entity.SentimentNegative, entity.AggressionNone},
		{"praise", "Thank you, love the product but it does not fit", entity.SentimentPositive, entity.AggressionNone},
		{"mixed", "Love the color but terrible fit", entity.SentimentMixed, entity.AggressionNone},
		{"angry", "I am angry the parcel is late", entity.SentimentNegative, entity.AggressionLow},
		{"two anger terms", "This is a ridiculous scam, item broken", entity.SentimentNegative, entity.AggressionMedium},
		{"urgent escalates", "I need a refund immediately", entity.SentimentNeutral, entity.AggressionLow},
		{"angry and urgent", "Furious and outraged, refund me immediately", entity.SentimentVeryNegative, entity.AggressionHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Classify(tt.text)
			assert.Equal(t, tt.sentiment, got.Sentiment)
			assert.Equal(t, tt.aggression, got.Aggression)
		})
	}
}

func TestHeuristic_IsGreeting(t *testing.T) {
	h := NewHeuristic(nil)

	assert.True(t, h.IsGreeting("hi"))
	assert.True(t, h.IsGreeting("Hello there"))
	assert.True(t, h.IsGreeting("good   morning team"))
	assert.False(t, h.IsGreeting("this is high quality"))
	assert.False(t, h.IsGreeting("my order"))
}

func TestHeuristic_Deterministic(t *testing.T) {
	h := NewHeuristic(nil)
	text := "The package was late and the box was crushed, I want my money back"

	first := h.Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, h.Classify(text))
	}
}
