// Package web serves the interactive classification form and the JSON API.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Canned example messages offered by the form.
const (
	ExampleHam  = "Hey, are we still meeting for lunch today?"
	ExampleSpam = "URGENT! You've won $1000! Click here NOW to claim!"
)

// Options holds the HTTP server settings.
type Options struct {
	ListenAddr      string
	ShutdownTimeout time.Duration
}

// Server exposes the classifier over HTTP: a single-page form and a JSON API.
type Server struct {
	service *core.ClassifierService
	logger  *zap.Logger
	opts    Options
	tmpl    *template.Template
	srv     *http.Server
}

// NewServer creates a new web server
func NewServer(service *core.ClassifierService, logger *zap.Logger, opts Options) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		service: service,
		logger:  logger,
		opts:    opts,
		tmpl:    tmpl,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/classify", s.handleClassify)
	mux.HandleFunc("/api/v1/classify", s.handleAPIClassify)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:    opts.ListenAddr,
		Handler: mux,
	}

	return s, nil
}

// Start begins serving HTTP requests
func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("address", s.opts.ListenAddr))
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Web server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// pageData feeds the index template.
type pageData struct {
	Text          string
	Warning       string
	Result        *core.Prediction
	IsSpam        bool
	ConfidencePct string
	SpamPct       string
	BarWidth      int
	ExampleHam    string
	ExampleSpam   string
}

func (s *Server) newPageData() *pageData {
	return &pageData{
		ExampleHam:  ExampleHam,
		ExampleSpam: ExampleSpam,
	}
}

// handleIndex renders the form. The example query parameter pre-fills the
// textarea with one of the canned messages.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := s.newPageData()
	switch r.URL.Query().Get("example") {
	case "ham":
		data.Text = ExampleHam
	case "spam":
		data.Text = ExampleSpam
	}

	s.render(w, data)
}

// handleClassify processes a form submission and renders the result.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	text := r.PostFormValue("text")
	data := s.newPageData()
	data.Text = text

	result, err := s.service.Classify(r.Context(), text)
	switch {
	case errors.Is(err, core.ErrEmptyMessage):
		data.Warning = "Please enter a message"
	case err != nil:
		s.logger.Error("Classification failed", zap.Error(err))
		http.Error(w, "classification failed", http.StatusInternalServerError)
		return
	default:
		data.Result = result
		data.IsSpam = result.Label == core.LabelSpam
		data.ConfidencePct = fmt.Sprintf("%.1f", result.Confidence*100)
		data.SpamPct = fmt.Sprintf("%.1f", result.SpamProbability*100)
		data.BarWidth = int(result.SpamProbability * 100)
	}

	s.render(w, data)
}

// classifyRequest is the JSON API request body.
type classifyRequest struct {
	Text string `json:"text"`
}

// classifyResponse is the JSON API response body.
type classifyResponse struct {
	Label           string  `json:"label"`
	SpamProbability float64 `json:"spam_probability"`
	Confidence      float64 `json:"confidence"`
}

// handleAPIClassify classifies one message posted as JSON.
func (s *Server) handleAPIClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.service.Classify(r.Context(), req.Text)
	switch {
	case errors.Is(err, core.ErrEmptyMessage):
		writeJSONError(w, http.StatusBadRequest, core.ErrEmptyMessage.Error())
		return
	case err != nil:
		s.logger.Error("Classification failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "classification failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(classifyResponse{
		Label:           result.Label,
		SpamProbability: result.SpamProbability,
		Confidence:      result.Confidence,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) render(w http.ResponseWriter, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("Failed to render template", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
