package ui

import (
	"strings"
	"testing"

	"github.com/resumatch/resumatch/internal/matcher"
)

func TestFormatScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		score  float64
		expect string
	}{
		{name: "one decimal kept", score: 87.5, expect: "87.5"},
		{name: "two decimals kept", score: 12.35, expect: "12.35"},
		{name: "rounded to two decimals", score: 66.666, expect: "66.67"},
		{name: "whole number", score: 90, expect: "90"},
		{name: "zero", score: 0, expect: "0"},
		{name: "full score", score: 100, expect: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatScore(tt.score); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestMatchResultLine(t *testing.T) {
	line := MatchResultLine(&matcher.MatchResult{MatchScore: 87.5})
	if line != "Match Score: 87.5%" {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestStatsLinesWithAbsentAggregates(t *testing.T) {
	lines := StatsLines(&matcher.DashboardSnapshot{TotalResumes: 7})

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Total resumes: 7" {
		t.Fatalf("unexpected totals line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "N/A") {
		t.Fatalf("expected N/A for absent average, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "N/A") {
		t.Fatalf("expected N/A for absent rating, got %q", lines[2])
	}
}

func TestStatsLinesFixedDecimals(t *testing.T) {
	avg := 72.5
	rating := 4.0
	lines := StatsLines(&matcher.DashboardSnapshot{
		TotalResumes:           3,
		AverageMatchScore:      &avg,
		RecruiterAverageRating: &rating,
	})

	if !strings.Contains(lines[1], "72.50%") {
		t.Fatalf("expected fixed two decimals, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "4.00 / 5") {
		t.Fatalf("expected fixed two decimals, got %q", lines[2])
	}
}

func TestSkillsChartPreservesOrderAndCounts(t *testing.T) {
	lines := SkillsChart([]matcher.SkillCount{
		{Skill: "Python", Count: 12},
		{Skill: "SQL", Count: 9},
	})

	if len(lines) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Python") || !strings.HasSuffix(lines[0], " 12") {
		t.Fatalf("unexpected first bar: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "SQL") || !strings.HasSuffix(lines[1], " 9") {
		t.Fatalf("unexpected second bar: %q", lines[1])
	}
	if !strings.Contains(lines[0], "█") || !strings.Contains(lines[1], "█") {
		t.Fatal("expected both bars to be drawn")
	}

	// The longer bar belongs to the higher count.
	if strings.Count(lines[1], "█") >= strings.Count(lines[0], "█") {
		t.Fatalf("expected the first bar to be longer:\n%s\n%s", lines[0], lines[1])
	}
}

func TestSkillsChartEmpty(t *testing.T) {
	lines := SkillsChart(nil)
	if len(lines) != 1 || !strings.Contains(lines[0], "No top skills") {
		t.Fatalf("unexpected empty chart: %+v", lines)
	}
}

func TestResumeLines(t *testing.T) {
	score := 90.0
	lines := ResumeLines([]matcher.ProcessedResume{
		{Filename: "a.pdf", MatchScore: &score},
		{Filename: "b.docx"},
	})

	if lines[0] != "a.pdf - Match Score: 90.00%" {
		t.Fatalf("unexpected scored line: %q", lines[0])
	}
	if lines[1] != "b.docx - Match Score: N/A" {
		t.Fatalf("unexpected unscored line: %q", lines[1])
	}
}

func TestResumeLinesEmpty(t *testing.T) {
	lines := ResumeLines(nil)
	if len(lines) != 1 || !strings.Contains(lines[0], "No resumes") {
		t.Fatalf("unexpected empty list: %+v", lines)
	}
}

func TestFeedbackLine(t *testing.T) {
	if got := FeedbackLine(3); got != "Recruiter feedback entries: 3" {
		t.Fatalf("unexpected line: %q", got)
	}
}
