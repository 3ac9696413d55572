package core

import (
	"context"
)

// Classifier defines the interface for the trained classification pipeline
type Classifier interface {
	// Predict classifies one message and returns its label and spam probability
	Predict(text string) (label string, spamProbability float64)

	// Classes returns the labels the classifier was trained on
	Classes() []string
}

// CacheRepository defines the interface for caching prediction results
type CacheRepository interface {
	// Get retrieves a cached entry for a message hash
	Get(ctx context.Context, messageHash string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, messageHash string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// MessageServer defines the lifecycle of a serving surface
type MessageServer interface {
	// Start begins accepting requests
	Start() error

	// Stop shuts the surface down
	Stop() error
}
