package di

import (
	"go.uber.org/dig"

	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/factory"
	"github.com/mikey/sms-spam-classifier/internal/logging"
	"github.com/mikey/sms-spam-classifier/internal/ml"
	"github.com/mikey/sms-spam-classifier/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewPipelineFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewServerFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register the trained pipeline; this is the one-time model load
	if err := container.Provide(func(f *factory.PipelineFactory) (*ml.Pipeline, error) {
		return f.CreatePipeline()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(p *ml.Pipeline) core.Classifier {
		return p
	}); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register service options
	if err := container.Provide(func(cfg *config.Config, f *factory.CacheFactory) (core.ServiceOptions, error) {
		ttl, err := f.GetCacheTTL()
		if err != nil {
			return core.ServiceOptions{}, err
		}
		return core.ServiceOptions{
			CacheEnabled:   f.IsCacheEnabled(),
			CacheTTL:       ttl,
			MaxMessageSize: cfg.GetInt("server.max_message_size"),
		}, nil
	}); err != nil {
		return nil, err
	}

	// Register classifier service
	if err := container.Provide(core.NewClassifierService); err != nil {
		return nil, err
	}

	// Register message server
	if err := container.Provide(func(f *factory.ServerFactory, service *core.ClassifierService) (core.MessageServer, error) {
		return f.CreateMessageServer(service)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
