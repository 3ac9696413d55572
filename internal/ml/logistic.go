package ml

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	learningRate = 1.0
	gradientTol  = 1e-6
)

// LogisticRegression is a binary linear classifier with L2 regularization
// and class-balanced sample weighting. Classes holds the label names in
// sorted order; the decision function scores the probability of Classes[1].
// Fields are exported for artifact serialization.
type LogisticRegression struct {
	Classes []string
	Weights []float64
	Bias    float64
	C       float64
	MaxIter int
}

// NewLogisticRegression creates an unfitted classifier with inverse
// regularization strength c and an iteration cap for the optimizer.
func NewLogisticRegression(c float64, maxIter int) *LogisticRegression {
	return &LogisticRegression{C: c, MaxIter: maxIter}
}

// Fit trains the classifier on sparse vectors with their string labels.
// Exactly two distinct labels must be present. Samples are weighted
// inversely proportional to their class frequency so the minority class
// is not drowned out. Training is deterministic: zero initialization,
// full-batch gradient descent, fixed learning rate.
func (m *LogisticRegression) Fit(xs []Vector, labels []string, numFeatures int) error {
	if len(xs) != len(labels) {
		return fmt.Errorf("got %d vectors but %d labels", len(xs), len(labels))
	}
	if len(xs) == 0 {
		return fmt.Errorf("cannot fit classifier on an empty training set")
	}

	classCount := make(map[string]int)
	for _, l := range labels {
		classCount[l]++
	}
	if len(classCount) != 2 {
		return fmt.Errorf("expected exactly 2 classes, got %d", len(classCount))
	}
	classes := make([]string, 0, 2)
	for c := range classCount {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	m.Classes = classes
	positive := classes[1]

	n := float64(len(xs))
	y := make([]float64, len(xs))
	sampleWeight := make([]float64, len(xs))
	var weightSum float64
	for i, l := range labels {
		if l == positive {
			y[i] = 1
		}
		// balanced weighting: n_samples / (n_classes * class_count)
		sampleWeight[i] = n / (2 * float64(classCount[l]))
		weightSum += sampleWeight[i]
	}

	m.Weights = make([]float64, numFeatures)
	m.Bias = 0
	grad := make([]float64, numFeatures)

	for iter := 0; iter < m.MaxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		var gradBias float64

		for i, x := range xs {
			z := m.Bias
			for k, idx := range x.Indices {
				z += m.Weights[idx] * x.Values[k]
			}
			resid := sampleWeight[i] * (sigmoid(z) - y[i])
			for k, idx := range x.Indices {
				grad[idx] += resid * x.Values[k]
			}
			gradBias += resid
		}

		// L2 penalty on the weights; the bias is not regularized.
		floats.Scale(1/weightSum, grad)
		floats.AddScaled(grad, 1/(m.C*weightSum), m.Weights)
		gradBias /= weightSum

		nrm := floats.Norm(grad, 2)
		if math.Sqrt(nrm*nrm+gradBias*gradBias) < gradientTol {
			break
		}

		floats.AddScaled(m.Weights, -learningRate, grad)
		m.Bias -= learningRate * gradBias
	}

	return nil
}

// PredictProba returns the class probabilities aligned with Classes.
// The two entries always sum to 1.
func (m *LogisticRegression) PredictProba(x Vector) []float64 {
	z := m.Bias
	for k, idx := range x.Indices {
		if idx < len(m.Weights) {
			z += m.Weights[idx] * x.Values[k]
		}
	}
	p := sigmoid(z)
	return []float64{1 - p, p}
}

// Predict returns the label of the most probable class.
func (m *LogisticRegression) Predict(x Vector) string {
	probs := m.PredictProba(x)
	if probs[1] >= probs[0] {
		return m.Classes[1]
	}
	return m.Classes[0]
}

// sigmoid is computed in a form that does not overflow for large |z|.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
