package ml

import (
	"testing"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCorpus is a small labeled corpus with clearly separated spam and ham
// vocabulary, enough for the min-df cutoff to keep the informative terms.
func testCorpus() (texts, labels []string) {
	ham := []string{
		"Hey, are we still meeting for lunch today?",
		"Ok I will call you when I get off work",
		"Are you coming to the party tonight or not",
		"Sorry I missed your call earlier can we talk later",
		"Can you pick up some milk on the way home please",
		"Running late for the meeting see you in ten minutes",
		"Thanks for dinner last night it was really nice",
		"Let me know when you get home safe",
		"Did you watch the game last night it was amazing",
		"The meeting got moved to three can you still make it",
		"Do you want to grab coffee tomorrow morning",
		"Can you send me the notes from class today",
		"Lunch was great we should do it again next week",
		"Are we still on for dinner on friday night",
		"Meeting ran long grabbing lunch now want anything",
		"Sure sounds good see you there at noon",
		"Can we move our lunch to thursday instead",
		"Still meeting at the usual place for lunch",
		"On my way now be there in five minutes",
		"How did the interview go today call me later",
	}
	spam := []string{
		"URGENT! You have won a $1000 cash prize! Click here NOW to claim!",
		"FREE entry to win £1000 cash! Text WIN to 85233 now!",
		"Congratulations! You have been selected for a free holiday. Call now to claim your prize",
		"WINNER! Claim your free $500 gift card NOW. Click the link to claim",
		"URGENT! Your mobile number has won £2000 cash. Call now!",
		"You have won a guaranteed £1000 cash or a £2000 prize. Call now!",
		"Claim your FREE cash prize now! Limited time offer click here",
		"Congratulations you won! Click here NOW to claim your free reward",
		"URGENT response required. You have won a holiday voucher call immediately",
		"Win cash now! Free entry in our £250 weekly prize draw text WIN",
		"Your number was selected! Claim the $2000 prize NOW click the link",
		"FREE gift waiting for you! Click now before the offer expires",
		"Cash prize alert! You won £5000 call this number now to claim",
		"Last chance to claim your free £1000 reward text CLAIM now",
	}
	for _, m := range ham {
		texts = append(texts, m)
		labels = append(labels, core.LabelHam)
	}
	for _, m := range spam {
		texts = append(texts, m)
		labels = append(labels, core.LabelSpam)
	}
	return texts, labels
}

func trainTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	texts, labels := testCorpus()
	p, err := Train(texts, labels, DefaultTrainConfig())
	require.NoError(t, err)
	return p
}

func TestPipelinePredictScenarios(t *testing.T) {
	p := trainTestPipeline(t)

	t.Run("obvious spam", func(t *testing.T) {
		label, spamProb := p.Predict("URGENT! You've won $1000! Click here NOW to claim!")
		assert.Equal(t, core.LabelSpam, label)
		assert.Greater(t, spamProb, 0.5)
	})

	t.Run("obvious ham", func(t *testing.T) {
		label, spamProb := p.Predict("Hey, are we still meeting for lunch today?")
		assert.Equal(t, core.LabelHam, label)
		assert.Less(t, spamProb, 0.5)
	})
}

func TestPipelineProbabilityProperties(t *testing.T) {
	p := trainTestPipeline(t)

	probes := []string{
		"URGENT! You've won $1000! Click here NOW to claim!",
		"Hey, are we still meeting for lunch today?",
		"zzzz qqqq completely unknown tokens",
	}

	t.Run("spam probability is always in range", func(t *testing.T) {
		for _, probe := range probes {
			_, spamProb := p.Predict(probe)
			assert.GreaterOrEqual(t, spamProb, 0.0)
			assert.LessOrEqual(t, spamProb, 1.0)
		}
	})

	t.Run("label agrees with the larger probability", func(t *testing.T) {
		for _, probe := range probes {
			label, spamProb := p.Predict(probe)
			if spamProb > 0.5 {
				assert.Equal(t, core.LabelSpam, label, "probe %q", probe)
			}
			if spamProb < 0.5 {
				assert.Equal(t, core.LabelHam, label, "probe %q", probe)
			}
		}
	})

	t.Run("unknown-vocabulary text still gets a defined probability", func(t *testing.T) {
		label, spamProb := p.Predict("zzzz qqqq completely unknown tokens")
		assert.False(t, spamProb < 0 || spamProb > 1)
		assert.Contains(t, []string{core.LabelHam, core.LabelSpam}, label)
	})
}

func TestPipelineDeterminism(t *testing.T) {
	texts, labels := testCorpus()
	cfg := DefaultTrainConfig()

	p1, err := Train(texts, labels, cfg)
	require.NoError(t, err)
	p2, err := Train(texts, labels, cfg)
	require.NoError(t, err)

	probes := []string{
		"URGENT! You've won $1000! Click here NOW to claim!",
		"Hey, are we still meeting for lunch today?",
		"free cash prize",
		"see you at lunch",
	}
	for _, probe := range probes {
		l1, s1 := p1.Predict(probe)
		l2, s2 := p2.Predict(probe)
		assert.Equal(t, l1, l2)
		assert.Equal(t, s1, s2, "probabilities must be bit-identical for %q", probe)
	}
}

func TestPipelineClassesAndScore(t *testing.T) {
	p := trainTestPipeline(t)

	assert.Equal(t, []string{core.LabelHam, core.LabelSpam}, p.Classes())

	texts, labels := testCorpus()
	acc := p.Score(texts, labels)
	assert.Greater(t, acc, 0.9, "training accuracy on a separable corpus")
}
