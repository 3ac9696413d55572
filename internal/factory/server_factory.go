package factory

import (
	"fmt"

	"github.com/mikey/sms-spam-classifier/internal/adapters/web"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"go.uber.org/zap"
)

// ServerFactory creates the serving surface based on configuration
type ServerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewServerFactory creates a new server factory
func NewServerFactory(cfg *config.Config, logger *zap.Logger) *ServerFactory {
	return &ServerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMessageServer creates the web server for the classifier service
func (f *ServerFactory) CreateMessageServer(service *core.ClassifierService) (core.MessageServer, error) {
	shutdownTimeout, err := f.cfg.GetDuration("server.shutdown_timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	return web.NewServer(service, f.logger, web.Options{
		ListenAddr:      f.cfg.GetString("server.listen_address"),
		ShutdownTimeout: shutdownTimeout,
	})
}
