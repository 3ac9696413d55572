// Package trainer runs the full training procedure: load, split, fit, score.
package trainer

import (
	"fmt"

	"github.com/mikey/sms-spam-classifier/internal/dataset"
	"github.com/mikey/sms-spam-classifier/internal/ml"
	"go.uber.org/zap"
)

// Options holds everything one training run needs.
type Options struct {
	DatasetPath string
	TestSize    float64
	Seed        int64
	Pipeline    ml.TrainConfig
}

// Result reports the outcome of a training run.
type Result struct {
	Pipeline  *ml.Pipeline
	Accuracy  float64
	TrainSize int
	TestSize  int
}

// Run loads the dataset, performs a seeded stratified split, fits the
// pipeline on the training partition only and scores it on the held-out
// partition. The same dataset and seed always produce the same pipeline.
func Run(opts Options, logger *zap.Logger) (*Result, error) {
	logger.Info("Loading dataset", zap.String("path", opts.DatasetPath))
	texts, labels, err := dataset.Load(opts.DatasetPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Dataset loaded", zap.Int("examples", len(texts)))

	trainTexts, trainLabels, testTexts, testLabels, err := ml.StratifiedSplit(texts, labels, opts.TestSize, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to split dataset: %w", err)
	}
	logger.Info("Dataset split",
		zap.Int("train", len(trainTexts)),
		zap.Int("test", len(testTexts)))

	pipeline, err := ml.Train(trainTexts, trainLabels, opts.Pipeline)
	if err != nil {
		return nil, err
	}

	accuracy := pipeline.Score(testTexts, testLabels)
	logger.Info("Training complete",
		zap.Float64("accuracy", accuracy),
		zap.Int("vocabulary_size", pipeline.Vectorizer.NumFeatures()))

	return &Result{
		Pipeline:  pipeline,
		Accuracy:  accuracy,
		TrainSize: len(trainTexts),
		TestSize:  len(testTexts),
	}, nil
}
