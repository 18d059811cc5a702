// Package ui renders already-shaped flow state for the terminal. Every
// function here is a pure function of its input: no fetching, no state.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/resumatch/resumatch/internal/matcher"
)

const maxBarWidth = 40

// FormatScore renders a score percentage with at most two decimal places,
// trimming trailing zeros (87.5 stays "87.5", 12.346 becomes "12.35").
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")

	return s
}

// MatchResultLine is the success line of the submission view.
func MatchResultLine(result *matcher.MatchResult) string {
	return fmt.Sprintf("Match Score: %s%%", FormatScore(result.MatchScore))
}

// StatsLines renders the summary stat block of the dashboard view. Absent
// aggregates show as N/A.
func StatsLines(s *matcher.DashboardSnapshot) []string {
	return []string{
		fmt.Sprintf("Total resumes: %d", s.TotalResumes),
		fmt.Sprintf("Average match score: %s", fixedPercent(s.AverageMatchScore)),
		fmt.Sprintf("Recruiter average rating: %s", fixedRating(s.RecruiterAverageRating)),
	}
}

// SkillsChart renders the ranked skills as horizontal bars, preserving the
// order the service returned.
func SkillsChart(skills []matcher.SkillCount) []string {
	if len(skills) == 0 {
		return []string{"No top skills available."}
	}

	max := 0
	width := 0
	for _, s := range skills {
		if s.Count > max {
			max = s.Count
		}
		if len(s.Skill) > width {
			width = len(s.Skill)
		}
	}

	lines := make([]string, 0, len(skills))
	for _, s := range skills {
		lines = append(lines, fmt.Sprintf("%-*s %s %d", width, s.Skill, barFor(s.Count, max), s.Count))
	}

	return lines
}

// ResumeLines renders the processed-resume list. A row without a score shows
// N/A like the aggregate stats do.
func ResumeLines(resumes []matcher.ProcessedResume) []string {
	if len(resumes) == 0 {
		return []string{"No resumes processed yet."}
	}

	lines := make([]string, 0, len(resumes))
	for _, r := range resumes {
		lines = append(lines, fmt.Sprintf("%s - Match Score: %s", r.Filename, fixedPercent(r.MatchScore)))
	}

	return lines
}

// FeedbackLine is the recruiter feedback counter of the dashboard view.
func FeedbackLine(count int) string {
	return fmt.Sprintf("Recruiter feedback entries: %d", count)
}

func fixedPercent(v *float64) string {
	if v == nil {
		return "N/A"
	}

	return fmt.Sprintf("%.2f%%", *v)
}

func fixedRating(v *float64) string {
	if v == nil {
		return "N/A"
	}

	return fmt.Sprintf("%.2f / 5", *v)
}

func barFor(count, max int) string {
	if max <= 0 || count <= 0 {
		return ""
	}

	n := count * maxBarWidth / max
	if n < 1 {
		n = 1
	}

	return strings.Repeat("█", n)
}
