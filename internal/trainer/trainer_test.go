package trainer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikey/sms-spam-classifier/internal/ml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeDataset(t *testing.T, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0644))
	return path
}

func balancedRows() []string {
	var rows []string
	spam := []string{
		"URGENT! You have won a $1000 cash prize! Click here NOW to claim!",
		"FREE entry to win £1000 cash! Text WIN now!",
		"Claim your FREE cash prize now! Limited time offer click here",
		"Congratulations you won! Click here NOW to claim your free reward",
		"Win cash now! Free entry in our £250 weekly prize draw text WIN",
		"Your number was selected! Claim the $2000 prize NOW click the link",
		"Cash prize alert! You won £5000 call this number now to claim",
		"Last chance to claim your free £1000 reward text CLAIM now",
		"URGENT! Your mobile number has won £2000 cash. Call now!",
		"FREE gift waiting for you! Click now before the offer expires",
	}
	ham := []string{
		"Hey are we still meeting for lunch today",
		"Ok I will call you when I get off work",
		"Running late for the meeting see you in ten minutes",
		"Thanks for dinner last night it was really nice",
		"Can you send me the notes from class today",
		"Lunch was great we should do it again next week",
		"Meeting ran long grabbing lunch now want anything",
		"Sure sounds good see you there at noon",
		"Can we move our lunch to thursday instead",
		"Still meeting at the usual place for lunch",
		"On my way now be there in five minutes",
		"How did the interview go today call me later",
		"Let me know when you get home safe",
		"Do you want to grab coffee tomorrow morning",
		"Are we still on for dinner on friday night",
	}
	for _, m := range spam {
		rows = append(rows, fmt.Sprintf("spam,%q", m))
	}
	for _, m := range ham {
		rows = append(rows, fmt.Sprintf("ham,%q", m))
	}
	return rows
}

func testOptions(path string) Options {
	return Options{
		DatasetPath: path,
		TestSize:    0.2,
		Seed:        42,
		Pipeline:    ml.DefaultTrainConfig(),
	}
}

func TestRun(t *testing.T) {
	path := writeDataset(t, balancedRows())

	result, err := Run(testOptions(path), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 20, result.TrainSize)
	assert.Equal(t, 5, result.TestSize)
	assert.GreaterOrEqual(t, result.Accuracy, 0.0)
	assert.LessOrEqual(t, result.Accuracy, 1.0)
	assert.NotNil(t, result.Pipeline)
}

func TestRunIsDeterministic(t *testing.T) {
	path := writeDataset(t, balancedRows())
	opts := testOptions(path)

	r1, err := Run(opts, zap.NewNop())
	require.NoError(t, err)
	r2, err := Run(opts, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, r1.Accuracy, r2.Accuracy, "same seed must reproduce the held-out accuracy")

	probes := []string{
		"URGENT! You've won $1000! Click here NOW to claim!",
		"Hey, are we still meeting for lunch today?",
	}
	for _, probe := range probes {
		l1, s1 := r1.Pipeline.Predict(probe)
		l2, s2 := r2.Pipeline.Predict(probe)
		assert.Equal(t, l1, l2)
		assert.Equal(t, s1, s2)
	}
}

func TestRunFailsOnSingleMinorityExample(t *testing.T) {
	rows := []string{`spam,"URGENT! You have won a prize claim now"`}
	for i := 0; i < 100; i++ {
		rows = append(rows, fmt.Sprintf("ham,just a normal message about lunch number %d", i))
	}
	path := writeDataset(t, rows)

	_, err := Run(testOptions(path), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")
}

func TestRunFailsOnMissingDataset(t *testing.T) {
	opts := testOptions(filepath.Join(t.TempDir(), "missing.csv"))
	_, err := Run(opts, zap.NewNop())
	assert.Error(t, err)
}
