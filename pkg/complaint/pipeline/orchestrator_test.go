package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/testutil"
	"solosolver-be/pkg/complaint/classifier"
	"solosolver-be/pkg/complaint/grounding"
	"solosolver-be/pkg/complaint/response"
	"solosolver-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRecorder struct {
	mu      sync.Mutex
	records []*entity.InteractionRecord
}

func (c *captureRecorder) Record(_ context.Context, r *entity.InteractionRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
}

type panicClassifier struct{}

func (panicClassifier) Classify(context.Context, classifier.Input) entity.Classification {
	panic("boom")
}

type fixture struct {
	store      *testutil.MockStore
	recorder   *captureRecorder
	orch       *Orchestrator
	classifier *testutil.FakeLLM
	generator  *testutil.FakeLLM
}

// newFixture wires the pipeline. Nil fakes leave that stage unconfigured.
func newFixture(classifierLLM, generatorLLM *testutil.FakeLLM) *fixture {
	log := logger.NewNopLogger()
	store := testutil.NewMockStore()
	h := classifier.NewHeuristic(classifier.DefaultLexicon())

	var cp, gp llm.LLMProvider
	if classifierLLM != nil {
		cp = classifierLLM
	}
	if generatorLLM != nil {
		gp = generatorLLM
	}

	rec := &captureRecorder{}
	orch := NewOrchestrator(
		classifier.NewRemoteClassifier(cp, h, log, 0.1, 0),
		grounding.NewBuilder(store, nil, log, 3, 10),
		response.NewGenerator(gp, h, log, 6, 0.7, 0),
		rec,
		log,
	)
	return &fixture{store: store, recorder: rec, orch: orch, classifier: classifierLLM, generator: generatorLLM}
}

func assertLegalPath(t *testing.T, states []State) {
	t.Helper()
	require.NotEmpty(t, states)
	assert.Equal(t, StateReceived, states[0])
	assert.Equal(t, StateResponded, states[len(states)-1])
	for i := 1; i < len(states); i++ {
		assert.Truef(t, CanTransition(states[i-1], states[i]), "%s -> %s", states[i-1], states[i])
	}
}

func TestRun_RemoteSuccess(t *testing.T) {
	f := newFixture(
		testutil.NewFakeLLM(`{"is_actionable": true, "complaint_category": "Damaged Item", "decision_recommendation": "Full_Refund_With_Return", "info_complete": true, "refund_percentage": 100, "reasoning": "broken on arrival"}`),
		testutil.NewFakeLLM("Dear customer, a refund is on its way."),
	)
	f.store.AddTransactions(&entity.Transaction{UserId: "u1", ProductTitle: "Lamp", InferredComplaintDriver: "Damaged Item", ComplaintBodyText: "lamp broken"})

	res := f.orch.Run(context.Background(), entity.ComplaintRequest{
		UserId:        "u1",
		ComplaintText: "My lamp arrived broken, the glass is shattered",
		SessionId:     "s1",
	})

	assert.Equal(t, entity.InteractionStatusSuccess, res.Status)
	assert.Equal(t, entity.SourceRemote, res.Classification.Source)
	assert.Equal(t, "Dear customer, a refund is on its way.", res.ResponseText)
	require.Len(t, res.MatchedTransactions, 1)
	assert.Equal(t, []State{
		StateReceived, StateClassifying, StateClassifiedRemote, StateContextBuilt,
		StateGenerating, StateGenerated, StateRecorded, StateResponded,
	}, res.States)
	assert.Contains(t, f.classifier.LastPrompt(), "Lamp - Damaged Item")

	require.Len(t, f.recorder.records, 1)
	rec := f.recorder.records[0]
	assert.Equal(t, res.InteractionId, rec.Id)
	assert.Equal(t, "s1", rec.SessionId)
	assert.Equal(t, "broken on arrival", rec.ClassificationReasoning)
	assert.Contains(t, rec.GenerationReasoning, "template=false")
	assert.Equal(t, "Lamp", rec.MatchedTransactions[0].ProductTitle)
}

func TestRun_BothRemotesDown(t *testing.T) {
	down := errors.New("connection refused")
	cl := testutil.NewFakeLLM()
	cl.Err = down
	gen := testutil.NewFakeLLM()
	gen.Err = down
	f := newFixture(cl, gen)

	res := f.orch.Run(context.Background(), entity.ComplaintRequest{
		UserId:        "u1",
		ComplaintText: "My headphones arrived broken and I'm furious",
	})

	assert.Equal(t, entity.InteractionStatusFallback, res.Status)
	assert.Equal(t, entity.SourceHeuristic, res.Classification.Source)
	assert.Equal(t, entity.CategoryDamagedItem, res.Classification.Category)
	assert.Equal(t, 100, res.Classification.RefundPercentage)
	assert.Equal(t, entity.SentimentNegative, res.Classification.Sentiment)
	assert.GreaterOrEqual(t, res.Classification.Aggression.Rank(), entity.AggressionLow.Rank())
	assert.Contains(t, res.ResponseText, "return")
	assert.Contains(t, res.ResponseText, "refund")
	assert.NotContains(t, res.ResponseText, "connection refused")
	assertLegalPath(t, res.States)
	assert.Contains(t, res.States, StateGeneratedFallback)
	assert.Len(t, f.recorder.records, 1)
}

func TestRun_GreetingAsksForDetails(t *testing.T) {
	f := newFixture(nil, nil)

	res := f.orch.Run(context.Background(), entity.ComplaintRequest{UserId: "u1", ComplaintText: "hi"})

	assert.False(t, res.Classification.IsActionable)
	assert.Equal(t, response.BranchAskForDetails, res.Branch)
	assert.NotEmpty(t, res.ResponseText)
	assert.Equal(t, grounding.NoHistoryProfile, res.ProfileSummary)
	assertLegalPath(t, res.States)
	assert.Len(t, f.recorder.records, 1)
}

func TestRun_ShortTextOverridesRemoteActionability(t *testing.T) {
	f := newFixture(
		testutil.NewFakeLLM(`{"is_actionable": true, "complaint_category": "Other", "decision_recommendation": "Other", "info_complete": true}`),
		testutil.NewFakeLLM("Hello! How can I help you today?"),
	)

	res := f.orch.Run(context.Background(), entity.ComplaintRequest{UserId: "u1", ComplaintText: "hi"})

	assert.Equal(t, entity.SourceRemote, res.Classification.Source)
	assert.False(t, res.Classification.IsActionable)
	assert.Equal(t, response.BranchAskForDetails, res.Branch)
	require.Len(t, f.recorder.records, 1)
	assert.False(t, f.recorder.records[0].Classification.IsActionable)
}

func TestRun_StoreDownStillResponds(t *testing.T) {
	f := newFixture(nil, nil)
	f.store.FindErr = errors.New("connection refused")

	res := f.orch.Run(context.Background(), entity.ComplaintRequest{UserId: "u1", ComplaintText: "The shoes are too small for me"})

	assert.Equal(t, entity.InteractionStatusFallback, res.Status)
	assert.Empty(t, res.MatchedTransactions)
	assert.Equal(t, entity.CategorySizingIssue, res.Classification.Category)
	assert.Len(t, f.recorder.records, 1)
}

func TestRun_PanicBecomesErrorStatus(t *testing.T) {
	log := logger.NewNopLogger()
	h := classifier.NewHeuristic(classifier.DefaultLexicon())
	rec := &captureRecorder{}
	orch := NewOrchestrator(
		panicClassifier{},
		grounding.NewBuilder(testutil.NewMockStore(), nil, log, 3, 10),
		response.NewGenerator(nil, h, log, 6, 0.7, 0),
		rec,
		log,
	)

	var res *Result
	require.NotPanics(t, func() {
		res = orch.Run(context.Background(), entity.ComplaintRequest{UserId: "u1", ComplaintText: "anything at all here"})
	})

	assert.Equal(t, entity.InteractionStatusError, res.Status)
	assert.Equal(t, Apology, res.ResponseText)
	require.Len(t, rec.records, 1)
	assert.Equal(t, entity.SourceHeuristic, rec.records[0].Classification.Source)
	assert.Equal(t, entity.InteractionStatusError, rec.records[0].Status)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateClassifying, StateClassifiedHeuristic))
	assert.True(t, CanTransition(StateGenerated, StateResponded))
	assert.False(t, CanTransition(StateGenerated, StateClassifying))
	assert.False(t, CanTransition(StateResponded, StateReceived))
}
