package api

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/jobs"
	"github.com/spigell/interview-coach/internal/utils"
)

const (
	userIDHeader = "X-User-ID"
	sourceHeader = "X-Recommendation-Source"
)

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	s.serveJobs(w, r, s.deps.Recommender.Recommend)
}

func (s *Server) handleRecommendCV(w http.ResponseWriter, r *http.Request) {
	s.serveJobs(w, r, s.deps.Recommender.MatchCV)
}

// serveJobs takes the caller identity from the auth header only; the body
// is ignored.
func (s *Server) serveJobs(w http.ResponseWriter, r *http.Request, fetch func(context.Context, string) (*jobs.Result, error)) {
	userID := utils.FirstNonEmpty(r.Header.Get(userIDHeader), s.deps.DefaultUserID)

	res, err := fetch(r.Context(), strings.TrimSpace(userID))
	if err != nil {
		s.logger.Error("recommendations unavailable", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	items := res.Jobs.Items
	if items == nil {
		items = []*jobs.Job{}
	}

	w.Header().Set(sourceHeader, string(res.Source))
	writeJSON(w, http.StatusOK, items)
}
