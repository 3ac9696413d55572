package factory

import (
	"errors"
	"fmt"

	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/ml"
	"github.com/mikey/sms-spam-classifier/internal/trainer"
	"go.uber.org/zap"
)

// PipelineFactory builds the classification pipeline at startup
type PipelineFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewPipelineFactory creates a new pipeline factory
func NewPipelineFactory(cfg *config.Config, logger *zap.Logger) *PipelineFactory {
	return &PipelineFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreatePipeline loads the model artifact. If the artifact is missing the
// behavior depends on server.auto_train: either train synchronously from the
// configured dataset and persist the result, or fail fast and tell the
// operator to run spam-train first. The pipeline is built exactly once per
// process and never mutated afterward.
func (f *PipelineFactory) CreatePipeline() (*ml.Pipeline, error) {
	store := artifact.NewStore(f.cfg.GetString("model.path"), f.logger)

	pipeline, err := store.Load()
	if err == nil {
		return pipeline, nil
	}
	if !errors.Is(err, artifact.ErrNotFound) {
		return nil, err
	}

	if !f.cfg.GetBool("server.auto_train") {
		return nil, fmt.Errorf("%w: run spam-train first", err)
	}

	f.logger.Info("Model artifact missing, training from dataset",
		zap.String("dataset", f.cfg.GetString("dataset.path")))

	result, err := trainer.Run(f.trainOptions(), f.logger)
	if err != nil {
		return nil, fmt.Errorf("auto-training failed: %w", err)
	}

	if err := store.Save(result.Pipeline); err != nil {
		return nil, err
	}

	return result.Pipeline, nil
}

func (f *PipelineFactory) trainOptions() trainer.Options {
	return trainer.Options{
		DatasetPath: f.cfg.GetString("dataset.path"),
		TestSize:    f.cfg.GetFloat64("train.test_size"),
		Seed:        f.cfg.GetInt64("train.seed"),
		Pipeline: ml.TrainConfig{
			MaxFeatures: f.cfg.GetInt("train.max_features"),
			MinDF:       f.cfg.GetInt("train.min_df"),
			NGramMax:    f.cfg.GetInt("train.ngram_max"),
			C:           f.cfg.GetFloat64("train.c"),
			MaxIter:     f.cfg.GetInt("train.max_iter"),
		},
	}
}
