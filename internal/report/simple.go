package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/wikilens/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting, using plain ASCII so that it can be piped to files.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteAnalysis outputs the analysis report in human-readable format.
func (w *SimpleWriter) WriteAnalysis(report *model.AnalysisReport) (int, error) {
	var sb strings.Builder
	w.writeAnalysis(&sb, report)
	w.writeFooter(&sb)
	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs a summary of every report followed by the reports.
func (w *SimpleWriter) WriteBatch(reports []*model.AnalysisReport) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "WIKILENS BATCH REPORT")
	w.writeSection(&sb, "BATCH SUMMARY")
	for _, r := range reports {
		name := orDash(r.Source)
		if r.Failed() {
			sb.WriteString(fmt.Sprintf("  [x] %-40s ERROR: %s\n", name, r.Error))
			continue
		}
		sb.WriteString(fmt.Sprintf("  [+] %-40s %3d/100\n", name, r.Result.HealthScore.Score))
	}
	sb.WriteString("\n")

	for _, r := range reports {
		if r.Failed() {
			continue
		}
		w.writeAnalysis(&sb, r)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeAnalysis(sb *strings.Builder, report *model.AnalysisReport) {
	w.writeBanner(sb, "WIKILENS REPORT")

	if report.Instance != "" {
		sb.WriteString(fmt.Sprintf("Instance:       %s\n", report.InstanceName()))
	}
	if report.Source != "" {
		sb.WriteString(fmt.Sprintf("Source:         %s\n", report.Source))
	}
	if report.RunID != "" {
		sb.WriteString(fmt.Sprintf("Run ID:         %s\n", report.RunID))
	}
	if report.Failed() {
		sb.WriteString(fmt.Sprintf("Status:         ERROR - %s\n\n", report.Error))
		return
	}

	result := report.Result
	sb.WriteString(fmt.Sprintf("Analyzed At:    %s\n", result.AnalyzedAt.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("Pages:          %d (%d published, %d unpublished)\n",
		report.Pages.TotalPages, report.Pages.PublishedPages, report.Pages.UnpublishedPages))
	sb.WriteString(fmt.Sprintf("Health Score:   %d/100\n", result.HealthScore.Score))
	sb.WriteString("\n")

	w.writeHealth(sb, result.HealthScore)
	w.writeCoverage(sb, result.NavigationCoverage)
	if report.Visibility != nil {
		w.writeVisibility(sb, report.Visibility)
	}
	w.writeBrokenLinks(sb, result.BrokenNavLinks)
	w.writeUnlistedPages(sb, result.UnlistedPages)
	w.writeTitleInconsistencies(sb, result.TitleInconsistencies)
	w.writeDuplicatePaths(sb, result.DuplicatePaths)
}

// writeHealth writes the score breakdown by category.
func (w *SimpleWriter) writeHealth(sb *strings.Builder, score model.HealthScore) {
	w.writeSection(sb, "HEALTH BREAKDOWN")

	if len(score.Issues) == 0 {
		sb.WriteString("  No issues found\n\n")
		return
	}

	for _, issue := range score.Issues {
		sb.WriteString(fmt.Sprintf("  [%-3s] %-24s %4d x %2d = -%d\n",
			w.getSeverityIndicator(issue.Severity), humanize(string(issue.Category)),
			issue.Count, issue.Weight, issue.Deduction))
		if w.verbose {
			info := model.GetCategoryInfo(issue.Category)
			sb.WriteString(fmt.Sprintf("        %s\n", info.Description))
			sb.WriteString(fmt.Sprintf("        Recommendation: %s\n", info.Recommendation))
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCoverage(sb *strings.Builder, coverage model.NavigationCoverage) {
	w.writeSection(sb, "NAVIGATION COVERAGE")
	sb.WriteString(fmt.Sprintf("  Pages in navigation: %d/%d (%.1f%%)\n\n",
		coverage.PagesInNavigation, coverage.TotalPages, coverage.CoveragePercentage))
}

func (w *SimpleWriter) writeVisibility(sb *strings.Builder, v *model.VisibilityAnalysis) {
	w.writeSection(sb, "VISIBILITY")
	sb.WriteString(fmt.Sprintf("  Public links:     %d\n", v.PublicPages))
	sb.WriteString(fmt.Sprintf("  Restricted links: %d\n", v.RestrictedPages))
	for _, id := range groupIDs(v) {
		sb.WriteString(fmt.Sprintf("  Group %s: %d page(s)\n", id, len(v.ByGroup[id])))
		if w.verbose {
			for _, p := range v.ByGroup[id] {
				sb.WriteString(fmt.Sprintf("    - %s\n", displayPath(p.Path)))
			}
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeBrokenLinks(sb *strings.Builder, links []model.BrokenNavLink) {
	if !w.startSection(sb, "BROKEN NAVIGATION LINKS", len(links)) {
		return
	}
	for _, l := range links {
		sb.WriteString(fmt.Sprintf("  * %s -> %s [%s] (%s)\n",
			orDash(l.Item.Label), l.Item.Target, orDash(l.Locale), humanize(string(l.Reason))))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeUnlistedPages(sb *strings.Builder, pages []model.UnlistedPage) {
	if !w.startSection(sb, "UNLISTED PAGES", len(pages)) {
		return
	}
	for _, u := range pages {
		sb.WriteString(fmt.Sprintf("  * %s %q (%s)\n",
			displayPath(u.Page.Path), u.Page.Title, humanize(string(u.Reason))))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeTitleInconsistencies(sb *strings.Builder, items []model.TitleInconsistency) {
	if !w.startSection(sb, "TITLE INCONSISTENCIES", len(items)) {
		return
	}
	for _, t := range items {
		sb.WriteString(fmt.Sprintf("  * %s\n", displayPath(t.Path)))
		sb.WriteString(fmt.Sprintf("    Navigation: %q\n", t.NavLabel))
		sb.WriteString(fmt.Sprintf("    Page:       %q\n", t.PageTitle))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeDuplicatePaths(sb *strings.Builder, dups []model.DuplicatePath) {
	if !w.startSection(sb, "DUPLICATE PATHS", len(dups)) {
		return
	}
	for _, d := range dups {
		sb.WriteString(fmt.Sprintf("  * %s (%d pages)\n", displayPath(d.NormalizedPath), len(d.Pages)))
		for _, p := range d.Paths {
			sb.WriteString(fmt.Sprintf("    - %s\n", p))
		}
	}
	sb.WriteString("\n")
}

// WriteOrphans outputs the orphan report in human-readable format.
func (w *SimpleWriter) WriteOrphans(result *model.OrphanAnalysisResult) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "WIKILENS ORPHAN REPORT")
	sb.WriteString(fmt.Sprintf("Analyzed At:    %s\n", result.AnalyzedAt.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("Total Pages:    %d\n", result.TotalPages))
	sb.WriteString(fmt.Sprintf("Orphaned Pages: %d\n\n", len(result.OrphanedPages)))

	if w.startSection(&sb, "ORPHANED PAGES", len(result.OrphanedPages)) {
		for _, o := range result.OrphanedPages {
			sb.WriteString(fmt.Sprintf("  * %s %q (%s, %d outgoing)\n",
				displayPath(o.Path), o.Title, humanize(string(o.Reason)), o.OutgoingLinks))
		}
		sb.WriteString("\n")
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteDiff outputs the snapshot comparison in human-readable format.
func (w *SimpleWriter) WriteDiff(result *model.ExportDiffResult) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, "WIKILENS DIFF REPORT")
	sb.WriteString(fmt.Sprintf("Compared At:    %s\n", result.ComparedAt.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("Total Changes:  %d\n", result.Summary.TotalChanges))
	sb.WriteString(fmt.Sprintf("Page Changes:   %d\n", result.Summary.PageChanges))
	sb.WriteString(fmt.Sprintf("Nav Changes:    %d\n\n", result.Summary.NavChanges))

	if !result.HasChanges() && !w.showEmpty {
		sb.WriteString("No changes detected\n\n")
	}

	if w.startSection(&sb, "PAGES ADDED", len(result.PagesAdded)) {
		for _, p := range result.PagesAdded {
			sb.WriteString(fmt.Sprintf("  + [%s] %s %q\n", p.ID, displayPath(p.Path), p.Title))
		}
		sb.WriteString("\n")
	}
	if w.startSection(&sb, "PAGES REMOVED", len(result.PagesRemoved)) {
		for _, p := range result.PagesRemoved {
			sb.WriteString(fmt.Sprintf("  - [%s] %s %q\n", p.ID, displayPath(p.Path), p.Title))
		}
		sb.WriteString("\n")
	}
	if w.startSection(&sb, "PAGES MODIFIED", len(result.PagesModified)) {
		for _, m := range result.PagesModified {
			sb.WriteString(fmt.Sprintf("  ~ [%s] %s (%s)\n", m.ID, displayPath(m.After.Path), strings.Join(m.Changes, ", ")))
			if w.verbose {
				for _, field := range m.Changes {
					before, after := pageField(m.Before, field), pageField(m.After, field)
					sb.WriteString(fmt.Sprintf("      %s: %s -> %s\n", field, before, after))
				}
			}
		}
		sb.WriteString("\n")
	}
	if w.startSection(&sb, "NAVIGATION ITEMS ADDED", len(result.NavItemsAdded)) {
		for _, item := range result.NavItemsAdded {
			sb.WriteString(fmt.Sprintf("  + [%s] %s -> %s\n", item.ID, orDash(item.Label), item.Target))
		}
		sb.WriteString("\n")
	}
	if w.startSection(&sb, "NAVIGATION ITEMS REMOVED", len(result.NavItemsRemoved)) {
		for _, item := range result.NavItemsRemoved {
			sb.WriteString(fmt.Sprintf("  - [%s] %s -> %s\n", item.ID, orDash(item.Label), item.Target))
		}
		sb.WriteString("\n")
	}
	if w.startSection(&sb, "NAVIGATION ITEMS MODIFIED", len(result.NavItemsModified)) {
		for _, m := range result.NavItemsModified {
			sb.WriteString(fmt.Sprintf("  ~ [%s] %s (%s)\n", m.ID, orDash(m.After.Label), strings.Join(m.Changes, ", ")))
			if w.verbose {
				for _, field := range m.Changes {
					before, after := navField(m.Before, field), navField(m.After, field)
					sb.WriteString(fmt.Sprintf("      %s: %s -> %s\n", field, before, after))
				}
			}
		}
		sb.WriteString("\n")
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// startSection writes a section header unless the section is empty and
// empty sections are hidden. It reports whether the header was written.
func (w *SimpleWriter) startSection(sb *strings.Builder, title string, count int) bool {
	if count == 0 && !w.showEmpty {
		return false
	}
	w.writeSection(sb, fmt.Sprintf("%s (%d)", title, count))
	if count == 0 {
		sb.WriteString("  None\n\n")
		return false
	}
	return true
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	// Center the title within the banner.
	if pad := (70 - len(title)) / 2; pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// getSeverityIndicator returns a visual indicator for the severity level.
func (w *SimpleWriter) getSeverityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityWarning:
		return "!"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by wikilens\n")
	sb.WriteString("https://github.com/nao1215/wikilens\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// pageField renders one compared page field for display.
func pageField(p model.Page, field string) string {
	switch field {
	case model.FieldTitle:
		return fmt.Sprintf("%q", p.Title)
	case model.FieldPath:
		return displayPath(p.Path)
	case model.FieldIsPublished:
		return fmt.Sprintf("%t", p.IsPublished)
	default:
		return "?"
	}
}

// navField renders one compared navigation field for display.
func navField(item model.NavigationItem, field string) string {
	switch field {
	case model.FieldLabel:
		return fmt.Sprintf("%q", item.Label)
	case model.FieldTarget:
		return orDash(item.Target)
	case model.FieldIcon:
		return orDash(item.Icon)
	case model.FieldVisibilityGroups:
		groups := make([]string, len(item.VisibilityGroups))
		for i, g := range item.VisibilityGroups {
			groups[i] = g.String()
		}
		return "[" + strings.Join(groups, ", ") + "]"
	default:
		return "?"
	}
}
