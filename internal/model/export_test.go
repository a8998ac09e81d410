package model

import "testing"

func TestNewPageExportData(t *testing.T) {
	t.Parallel()

	pages := []Page{
		{ID: "1", Path: "home", IsPublished: true},
		{ID: "2", Path: "draft", IsPublished: false},
		{ID: "3", Path: "docs", IsPublished: true},
	}

	data := NewPageExportData(pages, "2024-05-01T10:00:00Z", "prod")

	want := PageSummary{TotalPages: 3, PublishedPages: 2, UnpublishedPages: 1}
	if data.Summary != want {
		t.Errorf("got summary %+v, want %+v", data.Summary, want)
	}
	if data.InstanceID != "prod" {
		t.Errorf("expected instance prod, got %q", data.InstanceID)
	}

	t.Run("empty page list", func(t *testing.T) {
		t.Parallel()
		empty := NewPageExportData(nil, "", "")
		if empty.Summary != (PageSummary{}) {
			t.Errorf("expected zero summary, got %+v", empty.Summary)
		}
	})
}

func TestAnalysisReportInstanceName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report AnalysisReport
		want   string
	}{
		{name: "no label", report: AnalysisReport{Instance: "prod"}, want: "prod"},
		{name: "with label", report: AnalysisReport{Instance: "prod", Label: "Docs"}, want: "prod (Docs)"},
		{name: "label equals instance", report: AnalysisReport{Instance: "prod", Label: "prod"}, want: "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.report.InstanceName(); got != tt.want {
				t.Errorf("InstanceName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalysisReportFailed(t *testing.T) {
	t.Parallel()

	if !(&AnalysisReport{}).Failed() {
		t.Error("report without result should be failed")
	}
	if !(&AnalysisReport{Result: &AnalysisResult{}, Error: "boom"}).Failed() {
		t.Error("report with error should be failed")
	}
	if (&AnalysisReport{Result: &AnalysisResult{}}).Failed() {
		t.Error("report with result should not be failed")
	}
}
