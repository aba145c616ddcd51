package jobs

// Job is a recommendation-annotated job posting. Provider records are
// flattened into this shape; fallback records use it too.
type Job struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Company      string   `json:"company" yaml:"company"`
	Location     string   `json:"location,omitempty" yaml:"location"`
	Type         string   `json:"type,omitempty" yaml:"type"`
	Salary       string   `json:"salary,omitempty" yaml:"salary"`
	Description  string   `json:"description,omitempty" yaml:"description"`
	Requirements []string `json:"requirements,omitempty" yaml:"requirements"`
	URL          string   `json:"url,omitempty" yaml:"url"`

	Recommended          bool    `json:"recommended" yaml:"recommended"`
	MatchScore           float64 `json:"matchScore" yaml:"match_score"`
	RecommendationReason string  `json:"recommendationReason" yaml:"reason"`
	RecommendationIndex  int     `json:"recommendationIndex" yaml:"index"`
	// Synthetic marks fallback data that did not come from the recommender.
	Synthetic bool `json:"synthetic" yaml:"-"`
}

type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	if j == nil {
		return 0
	}
	return len(j.Items)
}

// IDs returns job ids in list order.
func (j *Jobs) IDs() []string {
	ids := make([]string, 0, j.Len())
	for _, job := range j.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

// item is one entry of the recommender response.
type item struct {
	Job    providerJob `json:"job"`
	Score  float64     `json:"score"`
	Reason string      `json:"reason"`
	Index  int         `json:"index"`
}

type providerJob struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	URL          string   `json:"url"`
}

func (i *item) toJob() *Job {
	return &Job{
		ID:                   i.Job.ID,
		Title:                i.Job.Title,
		Company:              i.Job.Company,
		Location:             i.Job.Location,
		Type:                 i.Job.Type,
		Salary:               i.Job.Salary,
		Description:          i.Job.Description,
		Requirements:         i.Job.Requirements,
		URL:                  i.Job.URL,
		Recommended:          true,
		MatchScore:           i.Score,
		RecommendationReason: i.Reason,
		RecommendationIndex:  i.Index,
	}
}
