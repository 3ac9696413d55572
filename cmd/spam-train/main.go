package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/logging"
	"github.com/mikey/sms-spam-classifier/internal/ml"
	"github.com/mikey/sms-spam-classifier/internal/trainer"
	"go.uber.org/zap"
)

var (
	// Input/output flags
	datasetPath = flag.String("dataset", "data/sms_spam_no_header.csv", "Labeled dataset CSV (label,text per row, no header)")
	modelPath   = flag.String("model-out", "models/spam_classifier.gob", "Output path for the model artifact")

	// Split flags
	seed     = flag.Int64("seed", 42, "Random seed for the stratified split")
	testSize = flag.Float64("test-size", 0.2, "Held-out fraction of the dataset")

	// Pipeline flags
	maxFeatures = flag.Int("max-features", 5000, "Maximum vocabulary size")
	minDF       = flag.Int("min-df", 2, "Minimum document frequency for a term")
	ngramMax    = flag.Int("ngram-max", 2, "Largest n-gram size")
	regC        = flag.Float64("c", 2.0, "Inverse regularization strength")
	maxIter     = flag.Int("max-iter", 1000, "Maximum optimizer iterations")

	// Logging flags
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.Bool("config", false, "Read settings from the config file instead of flags")
)

// Smoke-test messages printed after training.
const (
	smokeSpam = "FREE entry! Win £1000 cash!"
	smokeHam  = "Hey, are we still on for dinner?"
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts, artifactPath := optionsFromFlags()
	if *configFile {
		cfg, err := config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
		opts, artifactPath = optionsFromConfig(cfg)
	}

	// Print training summary
	fmt.Printf("\n=== Training ===\n")
	fmt.Printf("Dataset: %s\n", opts.DatasetPath)
	fmt.Printf("Test size: %.2f (seed %d)\n", opts.TestSize, opts.Seed)
	fmt.Printf("Vocabulary cap: %d, min df: %d, n-grams: 1-%d\n",
		opts.Pipeline.MaxFeatures, opts.Pipeline.MinDF, opts.Pipeline.NGramMax)
	fmt.Printf("C: %.2f, max iterations: %d\n", opts.Pipeline.C, opts.Pipeline.MaxIter)

	result, err := trainer.Run(opts, logger)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}

	// Persist the artifact
	store := artifact.NewStore(artifactPath, logger)
	if err := store.Save(result.Pipeline); err != nil {
		logger.Fatal("Failed to save model artifact", zap.Error(err))
	}

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Train examples: %d\n", result.TrainSize)
	fmt.Printf("Test examples: %d\n", result.TestSize)
	fmt.Printf("Accuracy: %.3f (%.1f%%)\n", result.Accuracy, result.Accuracy*100)
	fmt.Printf("Model saved to %s\n", artifactPath)

	// Smoke-test predictions
	fmt.Printf("\n=== Smoke Test ===\n")
	for _, msg := range []string{smokeSpam, smokeHam} {
		label, spamProb := result.Pipeline.Predict(msg)
		fmt.Printf("%q -> %s (spam probability %.4f)\n", msg, label, spamProb)
	}
}

// optionsFromFlags builds training options from command line flags
func optionsFromFlags() (trainer.Options, string) {
	return trainer.Options{
		DatasetPath: *datasetPath,
		TestSize:    *testSize,
		Seed:        *seed,
		Pipeline: ml.TrainConfig{
			MaxFeatures: *maxFeatures,
			MinDF:       *minDF,
			NGramMax:    *ngramMax,
			C:           *regC,
			MaxIter:     *maxIter,
		},
	}, *modelPath
}

// optionsFromConfig builds training options from the config file
func optionsFromConfig(cfg *config.Config) (trainer.Options, string) {
	return trainer.Options{
		DatasetPath: cfg.GetString("dataset.path"),
		TestSize:    cfg.GetFloat64("train.test_size"),
		Seed:        cfg.GetInt64("train.seed"),
		Pipeline: ml.TrainConfig{
			MaxFeatures: cfg.GetInt("train.max_features"),
			MinDF:       cfg.GetInt("train.min_df"),
			NGramMax:    cfg.GetInt("train.ngram_max"),
			C:           cfg.GetFloat64("train.c"),
			MaxIter:     cfg.GetInt("train.max_iter"),
		},
	}, cfg.GetString("model.path")
}
