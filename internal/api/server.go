package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/jobs"
	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/session"
	"github.com/spigell/interview-coach/internal/vapi"
	"github.com/spigell/interview-coach/internal/webhook"
)

// Provisioner creates a remote interview assistant.
type Provisioner interface {
	Create(ctx context.Context, candidateName string, questions []string) (*vapi.Assistant, error)
}

// Recommender returns job recommendations for a caller.
type Recommender interface {
	Recommend(ctx context.Context, userID string) (*jobs.Result, error)
	MatchCV(ctx context.Context, userID string) (*jobs.Result, error)
}

// Deps are the collaborators the HTTP layer needs. Sessions is the single
// store-backed service shared by the save, answers and export routes.
type Deps struct {
	Sessions     *session.Service
	Provisioner  Provisioner
	Dispatcher   *webhook.Dispatcher
	Recommender  Recommender
	PublicConfig vapi.PublicConfig

	Logger        *zap.Logger
	Version       string
	CORSOrigins   []string
	DefaultUserID string
}

// Server holds the HTTP handlers for the interview API.
type Server struct {
	deps   Deps
	logger *zap.Logger
}

func New(deps Deps) *Server {
	return &Server{
		deps:   deps,
		logger: logger.WithFields(deps.Logger, zap.String("component", "api")),
	}
}

// Register wires the API routes onto the supplied mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/config/public", s.handlePublicConfig)

	mux.HandleFunc("POST /api/interview/start", s.handleStart)
	mux.HandleFunc("POST /api/interview/save-answer", s.handleSaveAnswer)
	mux.HandleFunc("GET /api/interview/answers", s.handleAnswers)
	mux.HandleFunc("GET /api/interview/export/{sessionId}", s.handleExport)

	mux.HandleFunc("POST /api/vapi/assistant", s.handleCreateAssistant)
	mux.HandleFunc("POST /api/vapi/webhook", s.handleWebhook)

	mux.HandleFunc("POST /api/jobs/recommend", s.handleRecommend)
	mux.HandleFunc("POST /api/jobs/recommend-cv", s.handleRecommendCV)
}

// Handler returns the routed API wrapped in recovery, logging and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)

	var h http.Handler = mux
	h = recoverer(h, s.logger)
	h = requestLogger(h, s.logger)
	h = cors(h, s.deps.CORSOrigins...)
	return h
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.deps.Version})
}

func (s *Server) handlePublicConfig(w http.ResponseWriter, _ *http.Request) {
	if err := s.deps.PublicConfig.Validate(); err != nil {
		s.logger.Warn("public config is not usable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.deps.PublicConfig)
}
