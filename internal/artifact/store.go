// Package artifact persists the fitted pipeline as a single opaque blob.
package artifact

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/sms-spam-classifier/internal/ml"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no artifact exists at the store's path.
var ErrNotFound = errors.New("model artifact not found")

// Store reads and writes the model artifact at a fixed path. The artifact is
// written once by training and read-only afterward; there is no in-place
// update path. An unreadable artifact means retrain.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store for the given artifact path
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the artifact location.
func (s *Store) Path() string {
	return s.path
}

// Save persists a fitted pipeline, creating the containing directory if absent.
func (s *Store) Save(p *ml.Pipeline) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create artifact directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	s.logger.Info("Model artifact saved",
		zap.String("path", s.path),
		zap.Int("vocabulary_size", p.Vectorizer.NumFeatures()))
	return nil
}

// Load reads a previously saved pipeline. A missing file yields ErrNotFound
// so callers can distinguish "train first" from a corrupt artifact.
func (s *Store) Load() (*ml.Pipeline, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to open artifact file: %w", err)
	}
	defer f.Close()

	var p ml.Pipeline
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", s.path, err)
	}

	s.logger.Info("Model artifact loaded",
		zap.String("path", s.path),
		zap.Int("vocabulary_size", p.Vectorizer.NumFeatures()))
	return &p, nil
}
