package ml

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// StratifiedSplit partitions parallel text/label slices into train and test
// sets, preserving each label's proportion in both partitions. Shuffling is
// driven by the seed, so the same inputs and seed always produce the same
// partitions. Every class needs at least 2 examples, otherwise one of the
// partitions would not see it at all.
func StratifiedSplit(texts, labels []string, testSize float64, seed int64) (trainTexts, trainLabels, testTexts, testLabels []string, err error) {
	if len(texts) != len(labels) {
		return nil, nil, nil, nil, fmt.Errorf("got %d texts but %d labels", len(texts), len(labels))
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("test size must be in (0, 1), got %g", testSize)
	}

	byClass := make(map[string][]int)
	for i, l := range labels {
		byClass[l] = append(byClass[l], i)
	}
	classes := make([]string, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	for _, c := range classes {
		if len(byClass[c]) < 2 {
			return nil, nil, nil, nil, fmt.Errorf(
				"label %q has %d example(s); need at least 2 for a stratified split", c, len(byClass[c]))
		}
	}

	rng := rand.New(rand.NewSource(seed))
	for _, c := range classes {
		idxs := byClass[c]
		rng.Shuffle(len(idxs), func(i, j int) {
			idxs[i], idxs[j] = idxs[j], idxs[i]
		})

		nTest := int(math.Round(testSize * float64(len(idxs))))
		if nTest < 1 {
			nTest = 1
		}
		if nTest >= len(idxs) {
			nTest = len(idxs) - 1
		}

		for _, i := range idxs[:nTest] {
			testTexts = append(testTexts, texts[i])
			testLabels = append(testLabels, labels[i])
		}
		for _, i := range idxs[nTest:] {
			trainTexts = append(trainTexts, texts[i])
			trainLabels = append(trainLabels, labels[i])
		}
	}

	return trainTexts, trainLabels, testTexts, testLabels, nil
}
