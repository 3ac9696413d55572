package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClassifier struct {
	label    string
	spamProb float64
}

func (s *stubClassifier) Predict(text string) (string, float64) {
	return s.label, s.spamProb
}

func (s *stubClassifier) Classes() []string {
	return []string{core.LabelHam, core.LabelSpam}
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, hash string) (*core.CacheEntry, error) {
	return nil, assert.AnError
}
func (noopCache) Set(ctx context.Context, entry *core.CacheEntry) error { return nil }
func (noopCache) Delete(ctx context.Context, hash string) error         { return nil }
func (noopCache) Cleanup(ctx context.Context) error                     { return nil }

func newTestServer(t *testing.T, clf core.Classifier) *Server {
	t.Helper()
	svc := core.NewClassifierService(clf, noopCache{}, utils.NewTextProcessor(zap.NewNop()), zap.NewNop(), core.ServiceOptions{
		CacheEnabled:   false,
		CacheTTL:       time.Hour,
		MaxMessageSize: 4096,
	})
	srv, err := NewServer(svc, zap.NewNop(), Options{
		ListenAddr:      "127.0.0.1:0",
		ShutdownTimeout: time.Second,
	})
	require.NoError(t, err)
	return srv
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func postForm(s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(s, req)
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t, &stubClassifier{label: core.LabelHam, spamProb: 0.1})

	t.Run("renders the form", func(t *testing.T) {
		rec := do(s, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "SMS Spam Detection")
	})

	t.Run("spam example pre-fills the textarea", func(t *testing.T) {
		rec := do(s, httptest.NewRequest(http.MethodGet, "/?example=spam", nil))
		assert.Contains(t, rec.Body.String(), "URGENT!")
	})

	t.Run("ham example pre-fills the textarea", func(t *testing.T) {
		rec := do(s, httptest.NewRequest(http.MethodGet, "/?example=ham", nil))
		assert.Contains(t, rec.Body.String(), "meeting for lunch today")
	})

	t.Run("unknown paths 404", func(t *testing.T) {
		rec := do(s, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestClassifyForm(t *testing.T) {
	t.Run("spam verdict is rendered", func(t *testing.T) {
		s := newTestServer(t, &stubClassifier{label: core.LabelSpam, spamProb: 0.93})
		rec := postForm(s, "/classify", url.Values{"text": {"win free cash"}})

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "SPAM")
		assert.Contains(t, body, "93.0")
	})

	t.Run("ham verdict shows complement confidence", func(t *testing.T) {
		s := newTestServer(t, &stubClassifier{label: core.LabelHam, spamProb: 0.08})
		rec := postForm(s, "/classify", url.Values{"text": {"see you at lunch"}})

		body := rec.Body.String()
		assert.Contains(t, body, "HAM")
		assert.Contains(t, body, "92.0")
	})

	t.Run("empty input renders a warning without predicting", func(t *testing.T) {
		s := newTestServer(t, &stubClassifier{label: core.LabelSpam, spamProb: 0.9})
		rec := postForm(s, "/classify", url.Values{"text": {"   "}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please enter a message")
	})
}

func TestClassifyAPI(t *testing.T) {
	t.Run("returns label and probabilities", func(t *testing.T) {
		s := newTestServer(t, &stubClassifier{label: core.LabelSpam, spamProb: 0.9})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", strings.NewReader(`{"text":"win cash now"}`))
		rec := do(s, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp classifyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, core.LabelSpam, resp.Label)
		assert.Equal(t, 0.9, resp.SpamProbability)
		assert.Equal(t, 0.9, resp.Confidence)
	})

	t.Run("empty input is a 400", func(t *testing.T) {
		s := newTestServer(t, &stubClassifier{label: core.LabelSpam, spamProb: 0.9})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", strings.NewReader(`{"text":"  "}`))
		rec := do(s, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "no input provided")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		s := newTestServer(t, &stubClassifier{label: core.LabelSpam, spamProb: 0.9})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/classify", strings.NewReader(`{`))
		rec := do(s, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &stubClassifier{label: core.LabelHam, spamProb: 0.1})
	rec := do(s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
