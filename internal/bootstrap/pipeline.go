package bootstrap

import (
	"fmt"

	"solosolver-be/internal/config"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/repository/memory"
	"solosolver-be/internal/repository/unitofwork"
	"solosolver-be/pkg/complaint/classifier"
	"solosolver-be/pkg/complaint/grounding"
	"solosolver-be/pkg/complaint/pipeline"
	"solosolver-be/pkg/complaint/recorder"
	"solosolver-be/pkg/complaint/response"
	"solosolver-be/pkg/events"
	"solosolver-be/pkg/kafka"
	"solosolver-be/pkg/llm"
	"solosolver-be/pkg/llm/factory"
	"solosolver-be/pkg/llm/resilient"
	pktNats "solosolver-be/pkg/nats"
)

// NewRemoteModel builds the hardened provider for one model slot. A disabled
// slot yields a nil provider.
func NewRemoteModel(name string, mc config.ModelConfig, cfg *config.Config, log logger.ILogger) (llm.LLMProvider, error) {
	apiKey := ""
	switch mc.Provider {
	case "gemini":
		apiKey = cfg.Keys.GoogleGemini
	case "huggingface":
		apiKey = cfg.Keys.HuggingFace
	}
	if mc.Provider == "gemini" && apiKey == "" {
		log.Warn("BOOTSTRAP", "GOOGLE_GEMINI_API_KEY is not set, using local fallback", map[string]interface{}{
			"slot": name,
		})
		return nil, nil
	}

	inner, err := factory.NewLLMProvider(mc.Provider, mc.Model, mc.BaseURL, apiKey)
	if err != nil {
		return nil, fmt.Errorf("%s model: %w", name, err)
	}
	if inner == nil {
		log.Warn("BOOTSTRAP", "Remote model disabled, using local fallback", map[string]interface{}{
			"slot": name,
		})
		return nil, nil
	}

	log.Info("BOOTSTRAP", "Remote model configured", map[string]interface{}{
		"slot":     name,
		"provider": mc.Provider,
		"model":    mc.Model,
	})
	return resilient.Wrap(inner, resilient.Config{
		Name:           name,
		Timeout:        cfg.Ai.RequestTimeout,
		MaxRetries:     cfg.Ai.MaxRetries,
		InitialBackoff: cfg.Ai.InitialBackoff,
	}, log), nil
}

// NewHeuristic loads the lexicon file, falling back to the compiled-in
// defaults when the file is absent.
func NewHeuristic(cfg *config.Config) (*classifier.Heuristic, error) {
	lex, err := classifier.LoadLexicon(cfg.Classifier.LexiconPath)
	if err != nil {
		return nil, err
	}
	return classifier.NewHeuristic(lex), nil
}

func NewPipeline(cfg *config.Config, uowFactory unitofwork.RepositoryFactory, rec recorder.Recorder, log logger.ILogger) (*pipeline.Orchestrator, error) {
	heuristic, err := NewHeuristic(cfg)
	if err != nil {
		return nil, err
	}

	classifierModel, err := NewRemoteModel("classifier", cfg.Ai.Classifier, cfg, log)
	if err != nil {
		return nil, err
	}
	generatorModel, err := NewRemoteModel("generator", cfg.Ai.Generator, cfg, log)
	if err != nil {
		return nil, err
	}

	profileCache := memory.NewProfileCache(cfg.Pipeline.ProfileCacheTTL)

	return pipeline.NewOrchestrator(
		classifier.NewRemoteClassifier(classifierModel, heuristic, log, cfg.Ai.Classifier.Temperature, cfg.Ai.Classifier.MaxTokens),
		grounding.NewBuilder(uowFactory, profileCache, log, cfg.Pipeline.TopK, cfg.Pipeline.CandidatePool),
		response.NewGenerator(generatorModel, heuristic, log, cfg.Pipeline.HistoryTail, cfg.Ai.Generator.Temperature, cfg.Ai.Generator.MaxTokens),
		rec,
		log,
	), nil
}

// NewEventPublisher picks the bus for COMPLAINT_ANALYZED. Connection failures
// degrade to a no-op publisher.
func NewEventPublisher(cfg *config.Config, log logger.ILogger) events.Publisher {
	switch cfg.Events.Bus {
	case "nats":
		pub, err := pktNats.NewPublisher(cfg.Events.NatsURL, cfg.Events.AnalyzedTopic, log)
		if err != nil {
			log.Warn("BOOTSTRAP", "Failed to connect to NATS publisher", map[string]interface{}{
				"error": err.Error(),
			})
			return events.NoopPublisher{}
		}
		return pub
	case "kafka":
		return kafka.NewProducer(cfg.Events.KafkaBrokers, cfg.Events.AnalyzedTopic)
	default:
		return events.NoopPublisher{}
	}
}
