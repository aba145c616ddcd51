package jobs

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fallback_jobs.yaml
var fallbackCatalogue []byte

const defaultFallbackReason = "Suggested while personalised recommendations are unavailable."

type catalogue struct {
	Jobs []*Job `yaml:"jobs"`
}

// Fallback returns a fresh copy of the synthetic job list. Every job is
// marked recommended and synthetic and carries a non-empty reason.
func Fallback() (*Jobs, error) {
	return parseFallback(fallbackCatalogue)
}

func parseFallback(data []byte) (*Jobs, error) {
	var c catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse fallback jobs: %w", err)
	}

	jobs := &Jobs{Items: make([]*Job, 0, len(c.Jobs))}
	for i, job := range c.Jobs {
		if job == nil {
			continue
		}
		job.Recommended = true
		job.Synthetic = true
		job.RecommendationIndex = i
		if strings.TrimSpace(job.RecommendationReason) == "" {
			job.RecommendationReason = defaultFallbackReason
		}
		jobs.Items = append(jobs.Items, job)
	}

	return jobs, nil
}
