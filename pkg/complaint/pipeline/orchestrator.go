package pipeline

import (
	"context"
	"fmt"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/pkg/complaint/classifier"
	"solosolver-be/pkg/complaint/grounding"
	"solosolver-be/pkg/complaint/recorder"
	"solosolver-be/pkg/complaint/response"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const Apology = "I apologize, but I'm experiencing technical difficulties. Please try again in a moment."

// abortedClassification keeps the audit row valid when a request dies before
// the classifier returned.
var abortedClassification = entity.Classification{
	Category:            entity.CategoryNotApplicable,
	RecommendedDecision: entity.DecisionEscalateToHumanAgent,
	Tone:                entity.ToneEmpatheticStandard,
	Sentiment:           entity.SentimentNeutral,
	Aggression:          entity.AggressionNone,
	Reasoning:           "Pipeline aborted before classification.",
	Source:              entity.SourceHeuristic,
}

// Result is the outcome of one analyze request.
type Result struct {
	InteractionId       uuid.UUID
	ResponseText        string
	Classification      entity.Classification
	MatchedTransactions []*entity.Transaction
	Profile             *entity.UserProfile
	ProfileSummary      string
	Status              entity.InteractionStatus
	Branch              response.Branch
	States              []State
}

// Orchestrator runs classify, ground, generate and record for a complaint.
// Stage failures degrade to fallbacks; Run never returns an error.
type Orchestrator struct {
	classifier classifier.Classifier
	builder    *grounding.Builder
	generator  *response.Generator
	recorder   recorder.Recorder
	logger     logger.ILogger
	tracer     trace.Tracer
}

func NewOrchestrator(
	c classifier.Classifier,
	builder *grounding.Builder,
	generator *response.Generator,
	rec recorder.Recorder,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		classifier: c,
		builder:    builder,
		generator:  generator,
		recorder:   rec,
		logger:     log,
		tracer:     otel.Tracer("complaint/pipeline"),
	}
}

func (o *Orchestrator) Run(ctx context.Context, req entity.ComplaintRequest) (res *Result) {
	ctx, span := o.tracer.Start(ctx, "complaint.analyze", trace.WithAttributes(
		attribute.String("user.id", req.UserId),
		attribute.Bool("session.present", req.SessionId != ""),
	))
	defer span.End()

	res = &Result{InteractionId: uuid.New()}
	recorded := false
	res.advance(StateReceived)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		o.logger.Error("PIPELINE", "Pipeline panicked", map[string]interface{}{
			"user_id": req.UserId,
			"error":   fmt.Sprint(r),
		})
		span.SetStatus(codes.Error, "pipeline panic")
		res.ResponseText = Apology
		res.Status = entity.InteractionStatusError
		if res.Classification.Source == "" {
			res.Classification = abortedClassification
		}
		if !recorded {
			o.record(ctx, req, res, nil)
		}
	}()

	history := o.loadHistory(ctx, req)

	res.advance(StateClassifying)
	c := o.classify(ctx, req, history)
	res.Classification = c
	if c.Source == entity.SourceRemote {
		res.advance(StateClassifiedRemote)
	} else {
		res.advance(StateClassifiedHeuristic)
	}

	pc := o.builder.Build(c, history)
	res.MatchedTransactions = pc.MatchedTransactions
	res.Profile = pc.Profile
	res.ProfileSummary = pc.ProfileSummary
	res.advance(StateContextBuilt)

	res.advance(StateGenerating)
	gen := o.generate(ctx, req, pc)
	res.ResponseText = gen.ResponseText
	res.Branch = gen.Branch
	res.Status = entity.InteractionStatusSuccess
	if gen.Fallback {
		res.Status = entity.InteractionStatusFallback
		res.advance(StateGeneratedFallback)
	} else {
		res.advance(StateGenerated)
	}

	o.record(ctx, req, res, &recordDetails{
		generationReasoning: gen.GenerationReasoning,
		historySummary:      pc.HistorySummary,
	})
	recorded = true
	res.advance(StateRecorded)
	res.advance(StateResponded)

	span.SetAttributes(
		attribute.String("complaint.category", string(c.Category)),
		attribute.String("classification.source", string(c.Source)),
		attribute.String("response.branch", string(gen.Branch)),
		attribute.String("interaction.status", string(res.Status)),
	)
	o.logger.Info("PIPELINE", "Complaint analyzed", map[string]interface{}{
		"interaction_id": res.InteractionId.String(),
		"user_id":        req.UserId,
		"category":       string(c.Category),
		"source":         string(c.Source),
		"branch":         string(gen.Branch),
		"status":         string(res.Status),
	})
	return res
}

func (o *Orchestrator) loadHistory(ctx context.Context, req entity.ComplaintRequest) *grounding.History {
	ctx, span := o.tracer.Start(ctx, "complaint.load_history")
	defer span.End()

	h := o.builder.LoadHistory(ctx, req.UserId, req.ComplaintText)
	span.SetAttributes(attribute.Int("history.candidates", len(h.Candidates)))
	return h
}

func (o *Orchestrator) classify(ctx context.Context, req entity.ComplaintRequest, h *grounding.History) entity.Classification {
	ctx, span := o.tracer.Start(ctx, "complaint.classify")
	defer span.End()

	top := h.Candidates
	if len(top) > o.builder.TopK() {
		top = top[:o.builder.TopK()]
	}
	c := o.classifier.Classify(ctx, classifier.Input{
		Text:           req.ComplaintText,
		ProfileSummary: grounding.ProfileSummary(h.Profile),
		HistorySummary: grounding.HistorySummary(top),
	})
	span.SetAttributes(attribute.String("classification.source", string(c.Source)))
	return c
}

func (o *Orchestrator) generate(ctx context.Context, req entity.ComplaintRequest, pc *grounding.PipelineContext) response.Result {
	ctx, span := o.tracer.Start(ctx, "complaint.generate")
	defer span.End()

	gen := o.generator.Generate(ctx, response.Request{
		ComplaintText: req.ComplaintText,
		ChatHistory:   req.ChatHistory,
		Context:       pc,
	})
	span.SetAttributes(
		attribute.String("response.branch", string(gen.Branch)),
		attribute.Bool("response.fallback", gen.Fallback),
	)
	return gen
}

type recordDetails struct {
	generationReasoning string
	historySummary      string
}

// record dispatches the audit entry on a context that outlives the request.
func (o *Orchestrator) record(ctx context.Context, req entity.ComplaintRequest, res *Result, d *recordDetails) {
	if d == nil {
		d = &recordDetails{}
	}

	matched := make([]entity.Transaction, 0, len(res.MatchedTransactions))
	for _, t := range res.MatchedTransactions {
		matched = append(matched, *t)
	}

	o.recorder.Record(context.WithoutCancel(ctx), &entity.InteractionRecord{
		Id:                      res.InteractionId,
		SessionId:               req.SessionId,
		UserId:                  req.UserId,
		ComplaintText:           req.ComplaintText,
		Classification:          res.Classification,
		ClassificationReasoning: res.Classification.Reasoning,
		GeneratedResponse:       res.ResponseText,
		GenerationReasoning:     d.generationReasoning,
		MatchedTransactions:     matched,
		Status:                  res.Status,
		ProfileSummary:          res.ProfileSummary,
		HistorySummary:          d.historySummary,
	})
}

func (r *Result) advance(s State) {
	r.States = append(r.States, s)
}
