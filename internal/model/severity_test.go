package model

import (
	"encoding/json"
	"testing"
)

func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityCritical, "critical"},
		{Severity(999), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

func TestSeverityJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(HealthIssue{Severity: SeverityCritical})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var issue HealthIssue
	if err := json.Unmarshal(data, &issue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue.Severity != SeverityCritical {
		t.Errorf("expected critical, got %s", issue.Severity)
	}

	var s Severity
	if err := s.UnmarshalText([]byte("fatal")); err == nil {
		t.Error("expected error for unknown severity name")
	}
}

func TestGetCategoryInfo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		category IssueCategory
		severity Severity
		weight   int
	}{
		{CategoryBrokenLinks, SeverityCritical, 10},
		{CategoryUnlistedPages, SeverityWarning, 5},
		{CategoryTitleInconsistencies, SeverityInfo, 2},
		{CategoryDuplicatePaths, SeverityCritical, 10},
		{IssueCategory("unknown"), SeverityInfo, 0},
	}

	for _, tc := range testCases {
		t.Run(string(tc.category), func(t *testing.T) {
			t.Parallel()
			info := GetCategoryInfo(tc.category)
			if info.Severity != tc.severity {
				t.Errorf("severity: got %s, expected %s", info.Severity, tc.severity)
			}
			if info.Weight != tc.weight {
				t.Errorf("weight: got %d, expected %d", info.Weight, tc.weight)
			}
		})
	}

	t.Run("every scored category has metadata", func(t *testing.T) {
		t.Parallel()
		for _, c := range ScoredCategories {
			if GetCategoryInfo(c).Weight == 0 {
				t.Errorf("category %s has no weight", c)
			}
		}
	})
}
