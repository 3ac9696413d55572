package ml

import (
	"fmt"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// TrainConfig holds the pipeline hyperparameters.
type TrainConfig struct {
	MaxFeatures int
	MinDF       int
	NGramMax    int
	C           float64
	MaxIter     int
}

// DefaultTrainConfig returns the standard hyperparameters for the SMS
// spam pipeline.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		MaxFeatures: 5000,
		MinDF:       2,
		NGramMax:    2,
		C:           2.0,
		MaxIter:     1000,
	}
}

// Pipeline is a fitted TF-IDF vectorizer chained with a logistic-regression
// classifier. Once fitted it is immutable and safe for concurrent use.
type Pipeline struct {
	Vectorizer *Vectorizer
	Classifier *LogisticRegression
}

// Train fits the full pipeline on the given texts and labels.
func Train(texts, labels []string, cfg TrainConfig) (*Pipeline, error) {
	vec := NewVectorizer(cfg.MaxFeatures, cfg.MinDF, cfg.NGramMax)
	if err := vec.Fit(texts); err != nil {
		return nil, fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	xs := make([]Vector, len(texts))
	for i, t := range texts {
		xs[i] = vec.Transform(t)
	}

	clf := NewLogisticRegression(cfg.C, cfg.MaxIter)
	if err := clf.Fit(xs, labels, vec.NumFeatures()); err != nil {
		return nil, fmt.Errorf("failed to fit classifier: %w", err)
	}

	return &Pipeline{Vectorizer: vec, Classifier: clf}, nil
}

// Predict classifies one message and returns the predicted label together
// with the estimated spam probability. The spam slot is resolved by looking
// the label up in the class list; if it is somehow absent, slot 1 is used.
func (p *Pipeline) Predict(text string) (string, float64) {
	x := p.Vectorizer.Transform(text)
	label := p.Classifier.Predict(x)
	probs := p.Classifier.PredictProba(x)

	spamIdx := 1
	for i, c := range p.Classifier.Classes {
		if c == core.LabelSpam {
			spamIdx = i
			break
		}
	}
	return label, probs[spamIdx]
}

// Classes returns the labels known to the classifier, in sorted order.
func (p *Pipeline) Classes() []string {
	return p.Classifier.Classes
}

// Score returns the fraction of texts whose predicted label matches the
// given label.
func (p *Pipeline) Score(texts, labels []string) float64 {
	if len(texts) == 0 {
		return 0
	}
	correct := 0
	for i, t := range texts {
		if label, _ := p.Predict(t); label == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(texts))
}
