package analyzer

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/wikilens/internal/model"
)

func sampleSite() (*model.PageExportData, *model.NavigationExportData) {
	pages := pageExport(
		page("1", "/en/home", "Home", true),
		page("2", "/en/docs", "Documentation", true),
		page("3", "/en/draft", "Draft", false),
		page("4", "/foo", "Foo", true),
		page("5", "/EN/foo", "Foo copy", true),
	)
	nav := navExport(
		link("n1", "Home", "/en/home"),
		link("n2", "Docs", "/en/docs"),
		link("n3", "Draft", "/en/draft"),
		link("n4", "Missing", "/en/missing"),
	)
	return pages, nav
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	pages, nav := sampleSite()
	got := Analyze(pages, nav, WithClock(fixedClock))

	if !got.AnalyzedAt.Equal(fixedTime) {
		t.Errorf("expected analyzedAt %v, got %v", fixedTime, got.AnalyzedAt)
	}
	if len(got.UnlistedPages) != 2 {
		t.Errorf("expected 2 unlisted pages, got %d", len(got.UnlistedPages))
	}
	if len(got.BrokenNavLinks) != 2 {
		t.Errorf("expected 2 broken links, got %d", len(got.BrokenNavLinks))
	}
	if len(got.TitleInconsistencies) != 1 {
		t.Errorf("expected 1 title inconsistency, got %d", len(got.TitleInconsistencies))
	}
	if len(got.DuplicatePaths) != 1 {
		t.Errorf("expected 1 duplicate group, got %d", len(got.DuplicatePaths))
	}
	if got.NavigationCoverage.PagesInNavigation != 3 {
		t.Errorf("expected 3 pages in navigation, got %d", got.NavigationCoverage.PagesInNavigation)
	}

	want := 100 - 2*10 - 2*5 - 1*2 - 1*10
	if got.HealthScore.Score != want {
		t.Errorf("expected score %d, got %d", want, got.HealthScore.Score)
	}
	if !got.HasIssues() {
		t.Error("expected HasIssues to be true")
	}
}

func TestAnalyzeMatchesIndividualAnalyzers(t *testing.T) {
	t.Parallel()

	pages, nav := sampleSite()
	got := Analyze(pages, nav)

	if !reflect.DeepEqual(got.UnlistedPages, FindUnlistedPages(pages, nav)) {
		t.Error("unlisted pages differ from FindUnlistedPages")
	}
	if !reflect.DeepEqual(got.BrokenNavLinks, FindBrokenNavLinks(pages, nav)) {
		t.Error("broken links differ from FindBrokenNavLinks")
	}
	if !reflect.DeepEqual(got.TitleInconsistencies, FindTitleInconsistencies(pages, nav)) {
		t.Error("title inconsistencies differ from FindTitleInconsistencies")
	}
	if got.NavigationCoverage != ComputeNavigationCoverage(pages, nav) {
		t.Error("coverage differs from ComputeNavigationCoverage")
	}
	if !reflect.DeepEqual(got.HealthScore, ComputeHealthScore(pages, nav)) {
		t.Error("health score differs from ComputeHealthScore")
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	t.Parallel()

	pages, nav := sampleSite()
	first := Analyze(pages, nav)
	second := Analyze(pages, nav, WithClock(func() time.Time { return first.AnalyzedAt.Add(time.Hour) }))

	second.AnalyzedAt = first.AnalyzedAt
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results apart from the timestamp")
	}
}

func TestAnalyzeCleanSite(t *testing.T) {
	t.Parallel()

	pages := pageExport(page("1", "/en/home", "Home", true))
	nav := navExport(link("n1", "Home", "/home"))

	got := Analyze(pages, nav)
	if got.HealthScore.Score != 100 || got.HasIssues() {
		t.Errorf("expected a perfect score, got %+v", got.HealthScore)
	}
	if got.NavigationCoverage.CoveragePercentage != 100 {
		t.Errorf("expected full coverage, got %v", got.NavigationCoverage.CoveragePercentage)
	}
}

func TestAnalyzeConcurrentCalls(t *testing.T) {
	t.Parallel()

	pages, nav := sampleSite()
	want := Analyze(pages, nav, WithClock(fixedClock))

	var wg sync.WaitGroup
	results := make([]*model.AnalysisResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Analyze(pages, nav, WithClock(fixedClock))
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if !reflect.DeepEqual(r, want) {
			t.Errorf("result %d differs from the sequential result", i)
		}
	}
}
