package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/mikey/sms-spam-classifier/internal/utils"
	"go.uber.org/zap"
)

// ErrEmptyMessage is returned when the input is empty or whitespace-only;
// the classifier is never invoked for such input.
var ErrEmptyMessage = errors.New("no input provided")

// ServiceOptions holds the runtime settings of the classifier service.
type ServiceOptions struct {
	CacheEnabled   bool
	CacheTTL       time.Duration
	MaxMessageSize int
}

// ClassifierService is the core service for message classification. It holds
// an immutable, fully-trained classifier handle built once at startup; no
// request mutates it, so concurrent use needs no synchronization.
type ClassifierService struct {
	classifier Classifier
	cache      CacheRepository
	textProc   *utils.TextProcessor
	logger     *zap.Logger
	opts       ServiceOptions
}

// NewClassifierService creates a new classifier service
func NewClassifierService(
	classifier Classifier,
	cache CacheRepository,
	textProc *utils.TextProcessor,
	logger *zap.Logger,
	opts ServiceOptions,
) *ClassifierService {
	return &ClassifierService{
		classifier: classifier,
		cache:      cache,
		textProc:   textProc,
		logger:     logger,
		opts:       opts,
	}
}

// Classify classifies one message as spam or ham
func (s *ClassifierService) Classify(ctx context.Context, text string) (*Prediction, error) {
	text = s.textProc.ProcessText(text, s.opts.MaxMessageSize)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	hash := messageHash(text)

	// Check cache if enabled
	if s.opts.CacheEnabled {
		if entry, err := s.cache.Get(ctx, hash); err == nil {
			s.logger.Debug("Cache hit for message", zap.String("hash", hash))
			return &Prediction{
				Label:           entry.Label,
				SpamProbability: entry.SpamProbability,
				Confidence:      confidenceFor(entry.Label, entry.SpamProbability),
				AnalyzedAt:      time.Now(),
				Source:          "cache",
			}, nil
		}
	}

	label, spamProb := s.classifier.Predict(text)
	result := &Prediction{
		Label:           label,
		SpamProbability: spamProb,
		Confidence:      confidenceFor(label, spamProb),
		AnalyzedAt:      time.Now(),
		Source:          "model",
	}

	// Update cache with result if enabled
	if s.opts.CacheEnabled {
		entry := &CacheEntry{
			MessageHash:     hash,
			Label:           result.Label,
			SpamProbability: result.SpamProbability,
			LastSeen:        result.AnalyzedAt,
			ExpiresAt:       result.AnalyzedAt.Add(s.opts.CacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	return result, nil
}

// Classes returns the labels known to the underlying classifier.
func (s *ClassifierService) Classes() []string {
	return s.classifier.Classes()
}

// confidenceFor maps the spam probability to the confidence in the
// predicted label.
func confidenceFor(label string, spamProbability float64) float64 {
	if label == LabelSpam {
		return spamProbability
	}
	return 1 - spamProbability
}

// messageHash returns the cache key for a message body.
func messageHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
