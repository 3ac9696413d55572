package core

import (
	"time"
)

// Label values recognized in datasets and predictions.
const (
	LabelSpam = "spam"
	LabelHam  = "ham"
)

// Prediction represents the result of classifying one message
type Prediction struct {
	Label           string
	SpamProbability float64
	Confidence      float64
	AnalyzedAt      time.Time
	Source          string
}

type CacheEntry struct {
	MessageHash     string
	Label           string
	SpamProbability float64
	LastSeen        time.Time
	ExpiresAt       time.Time
}
