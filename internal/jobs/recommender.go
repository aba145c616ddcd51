package jobs

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
)

// FailurePolicy decides what an endpoint does when the recommender fails.
type FailurePolicy string

const (
	// PolicyFallback serves the synthetic catalogue instead of an error.
	PolicyFallback FailurePolicy = "fallback"
	// PolicyFail returns the upstream error to the caller.
	PolicyFail FailurePolicy = "fail"
)

// ParsePolicy accepts the configured policy name; blank means fallback.
func ParsePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyFallback:
		return PolicyFallback, nil
	case PolicyFail:
		return PolicyFail, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q (expected %q or %q)", s, PolicyFallback, PolicyFail)
	}
}

// Source tells whether a result came from the recommender.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Result is a recommendation list with its origin.
type Result struct {
	Jobs   *Jobs
	Source Source
}

type fetcher interface {
	Recommend(ctx context.Context, userID string) (*Jobs, error)
	MatchCV(ctx context.Context, userID string) (*Jobs, error)
}

// Policies holds one failure policy per endpoint.
type Policies struct {
	Recommend FailurePolicy
	MatchCV   FailurePolicy
}

// Recommender applies the configured failure policy around the client.
type Recommender struct {
	client   fetcher
	policies Policies
	logger   *zap.Logger
}

func NewRecommender(client *Client, policies Policies, log *zap.Logger) *Recommender {
	return &Recommender{
		client:   client,
		policies: policies,
		logger:   logger.WithFields(log, zap.String("component", "recommender")),
	}
}

func (r *Recommender) Recommend(ctx context.Context, userID string) (*Result, error) {
	jobs, err := r.client.Recommend(ctx, userID)
	return r.resolve("recommend", r.policies.Recommend, userID, jobs, err)
}

func (r *Recommender) MatchCV(ctx context.Context, userID string) (*Result, error) {
	jobs, err := r.client.MatchCV(ctx, userID)
	return r.resolve("match_cv", r.policies.MatchCV, userID, jobs, err)
}

func (r *Recommender) resolve(op string, policy FailurePolicy, userID string, jobs *Jobs, err error) (*Result, error) {
	if err == nil {
		r.logger.Info("recommendations fetched",
			zap.String("op", op),
			zap.String("user_id", userID),
			zap.Int("count", jobs.Len()),
		)
		r.logger.Debug("recommended job ids", zap.String("op", op), zap.Strings("ids", jobs.IDs()))
		return &Result{Jobs: jobs, Source: SourceLive}, nil
	}

	if policy == PolicyFail {
		r.logger.Error("recommender failed", zap.String("op", op), zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.logger.Warn("recommender failed, serving fallback jobs",
		zap.String("op", op),
		zap.String("user_id", userID),
		zap.Error(err),
	)

	fallback, ferr := Fallback()
	if ferr != nil {
		return nil, fmt.Errorf("%s: %w (fallback: %v)", op, err, ferr)
	}
	return &Result{Jobs: fallback, Source: SourceFallback}, nil
}
