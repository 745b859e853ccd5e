package bootstrap

import (
	"context"
	"fmt"

	"solosolver-be/internal/config"
	"solosolver-be/internal/controller"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/repository/unitofwork"
	"solosolver-be/internal/service"
	"solosolver-be/pkg/cache"
	"solosolver-be/pkg/complaint/recorder"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ComplaintController   controller.IComplaintController
	SearchController      controller.ISearchController
	InteractionController controller.IInteractionController

	// Services
	ComplaintService service.IComplaintService
	SearchService    service.ISearchService

	// Background
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func() error
}

// Options adjusts the container for non-server entrypoints.
type Options struct {
	// Logger replaces the rotating file logger.
	Logger logger.ILogger
	// SyncRecording makes the recorder wait until the consumer has persisted
	// the interaction, so short-lived processes do not lose it on exit.
	SyncRecording bool
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(db, cfg, Options{})
}

func NewContainerWithOptions(db *gorm.DB, cfg *config.Config, opts Options) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	var sysLogger logger.ILogger = opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            256,
			BlockPublishUntilSubscriberAck: opts.SyncRecording,
		},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	eventPublisher := NewEventPublisher(cfg, sysLogger)
	c.closers = append(c.closers, eventPublisher.Close)

	// 3. Redis (optional)
	var searchCache *cache.SearchCache
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
				"error": err.Error(),
			})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis, search cache stays cold", map[string]interface{}{
				"error": err.Error(),
			})
		}
		c.closers = append(c.closers, rdb.Close)
		searchCache = cache.NewSearchCache(rdb, cfg.Pipeline.SearchCacheTTL, sysLogger)
	}

	// 4. Pipeline
	rec := recorder.NewBusRecorder(pubSub, cfg.Events.InteractionsTopic, sysLogger)
	orchestrator, err := NewPipeline(cfg, uowFactory, rec, sysLogger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	// 5. Services
	c.ComplaintService = service.NewComplaintService(orchestrator)
	c.SearchService = service.NewSearchService(uowFactory, searchCache, sysLogger, cfg.Pipeline.SearchDefaultLimit, cfg.Pipeline.SearchMaxLimit)
	interactionService := service.NewInteractionService(uowFactory)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.InteractionsTopic, uowFactory, eventPublisher, sysLogger)

	// 6. Controllers
	c.ComplaintController = controller.NewComplaintController(c.ComplaintService, sysLogger)
	c.SearchController = controller.NewSearchController(c.SearchService)
	c.InteractionController = controller.NewInteractionController(interactionService)

	return c, nil
}

// Close releases connections in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("BOOTSTRAP", "Close failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	_ = c.Logger.Sync()
}
