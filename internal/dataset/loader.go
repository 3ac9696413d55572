// Package dataset loads the labeled SMS corpus used for training.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// Load reads a two-column CSV of (label, text) pairs with no header row.
// Labels must be exactly "spam" or "ham"; anything else fails the load with
// the offending row number. The file being absent or malformed is fatal.
func Load(path string) (texts, labels []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("dataset %s is empty", path)
	}

	texts = make([]string, 0, len(records))
	labels = make([]string, 0, len(records))
	for i, rec := range records {
		label := strings.TrimSpace(rec[0])
		if label != core.LabelSpam && label != core.LabelHam {
			return nil, nil, fmt.Errorf("dataset %s row %d: unknown label %q (expected %q or %q)",
				path, i+1, label, core.LabelSpam, core.LabelHam)
		}
		texts = append(texts, rec[1])
		labels = append(labels, label)
	}

	return texts, labels, nil
}
