package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/interview-coach/internal/jobs"
)

func TestRecommendUsesHeaderIdentity(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/jobs/recommend", `{"userId":"spoofed"}`, "X-User-ID", "user-42")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", env.recommender.userID)
	assert.Equal(t, "live", rec.Header().Get("X-Recommendation-Source"))

	var list []jobs.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "j-1", list[0].ID)
}

func TestRecommendDefaultIdentity(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/jobs/recommend-cv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", env.recommender.userID)
}

func TestRecommendFallbackSource(t *testing.T) {
	env := newTestEnv(t)
	fallback, err := jobs.Fallback()
	require.NoError(t, err)
	env.recommender.result = &jobs.Result{Jobs: fallback, Source: jobs.SourceFallback}

	rec := env.do(t, http.MethodPost, "/api/jobs/recommend", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fallback", rec.Header().Get("X-Recommendation-Source"))

	var list []jobs.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.NotEmpty(t, list)
	for _, job := range list {
		assert.True(t, job.Recommended)
		assert.True(t, job.Synthetic)
		assert.NotEmpty(t, job.RecommendationReason)
	}
}

func TestRecommendFailPolicy(t *testing.T) {
	env := newTestEnv(t)
	env.recommender.err = errors.New("recommend: bad status: 503 Service Unavailable")

	rec := env.do(t, http.MethodPost, "/api/jobs/recommend", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "bad status")
}
