package matcher

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// SkillCount is one entry of the ranked top-skills list, ordered descending
// by count as returned by the service.
type SkillCount struct {
	Skill string
	Count int
}

// ProcessedResume is one row of the processed-resumes listing. A nil score
// means the service has no score for that row.
type ProcessedResume struct {
	Filename   string   `json:"filename"`
	MatchScore *float64 `json:"match_score"`
}

// DashboardSnapshot is the aggregate state of the service as of one fetch.
// It is produced atomically and always replaces any prior snapshot wholesale.
type DashboardSnapshot struct {
	TotalResumes           int               `json:"total_resumes"`
	AverageMatchScore      *float64          `json:"average_match_score"`
	RecruiterAverageRating *float64          `json:"recruiter_average_rating"`
	TopSkills              []SkillCount      `json:"-"`
	FeedbackCount          int               `json:"feedback_count"`
	ProcessedResumes       []ProcessedResume `json:"processed_resumes"`
}

// FetchDashboard loads the aggregate dashboard data. The credential is
// attached as a bearer header when non-empty; an empty credential means an
// anonymous request. The payload fields are individually optional:
// total_resumes and top_skills default to zero values instead of failing.
func (c *Client) FetchDashboard(credential string) (*DashboardSnapshot, error) {
	var raw map[string]any
	if err := c.getJSON(dashboardPath, credential, &raw); err != nil {
		return nil, err
	}

	snapshot := &DashboardSnapshot{}
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           snapshot,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, &ServerError{Detail: "malformed dashboard payload"}
	}

	skills, err := parseTopSkills(raw["top_skills"])
	if err != nil {
		c.logger.Debug("rejecting dashboard payload", zap.Error(err))
		return nil, &ServerError{Detail: "malformed dashboard payload"}
	}
	snapshot.TopSkills = skills

	if snapshot.ProcessedResumes == nil {
		snapshot.ProcessedResumes = []ProcessedResume{}
	}

	c.logger.Debug("got dashboard snapshot",
		zap.Int("total_resumes", snapshot.TotalResumes),
		zap.Int("top_skills", len(snapshot.TopSkills)),
	)

	return snapshot, nil
}

// parseTopSkills decodes the [name, count] pair form the service uses for the
// ranked skills list. A missing or null list is an empty list, never an error.
func parseTopSkills(v any) ([]SkillCount, error) {
	if v == nil {
		return []SkillCount{}, nil
	}

	pairs, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("top_skills is not a list")
	}

	skills := make([]SkillCount, 0, len(pairs))
	for _, p := range pairs {
		pair, ok := p.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("top_skills entry is not a [name, count] pair")
		}

		name, ok := pair[0].(string)
		if !ok {
			return nil, fmt.Errorf("top_skills name is not a string")
		}

		count, ok := pair[1].(float64)
		if !ok {
			return nil, fmt.Errorf("top_skills count is not a number")
		}

		skills = append(skills, SkillCount{Skill: name, Count: int(count)})
	}

	return skills, nil
}
