package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/wikilens/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for pull request comments and wiki pages; it uses
// GitHub-flavored alerts and mermaid charts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteAnalysis outputs the analysis report in Markdown format.
func (w *MarkdownWriter) WriteAnalysis(report *model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("wikilens Report")
	md.PlainText("")
	w.writeAnalysis(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs a summary table followed by every report.
func (w *MarkdownWriter) WriteBatch(reports []*model.AnalysisReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("wikilens Batch Report")
	md.PlainText("")

	rows := make([][]string, 0, len(reports))
	failed := 0
	for _, r := range reports {
		if r.Failed() {
			failed++
			rows = append(rows, []string{orDash(r.Source), "-", "❌ " + r.Error})
			continue
		}
		rows = append(rows, []string{
			orDash(r.Source),
			strconv.Itoa(r.Result.HealthScore.Score),
			w.getStatusText(r.Result),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Score", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	if failed > 0 {
		md.Warningf("%d of %d snapshot(s) could not be analyzed.", failed, len(reports))
		md.PlainText("")
	}

	for _, r := range reports {
		if r.Failed() {
			continue
		}
		md.H2(orDash(r.Source))
		md.PlainText("")
		w.writeAnalysis(md, r)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeAnalysis(md *markdown.Markdown, report *model.AnalysisReport) {
	rows := [][]string{}
	if report.Instance != "" {
		rows = append(rows, []string{"Instance", report.InstanceName()})
	}
	if report.RunID != "" {
		rows = append(rows, []string{"Run ID", "`" + report.RunID + "`"})
	}
	if report.Failed() {
		rows = append(rows, []string{"Status", "❌ Error - " + report.Error})
		md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
		md.PlainText("")
		return
	}

	result := report.Result
	rows = append(rows,
		[]string{"Analyzed At", result.AnalyzedAt.Format(timeLayout)},
		[]string{"Pages", fmt.Sprintf("%d (%d published, %d unpublished)",
			report.Pages.TotalPages, report.Pages.PublishedPages, report.Pages.UnpublishedPages)},
		[]string{"Health Score", fmt.Sprintf("**%d/100**", result.HealthScore.Score)},
		[]string{"Navigation Coverage", fmt.Sprintf("%.1f%% (%d/%d)",
			result.NavigationCoverage.CoveragePercentage,
			result.NavigationCoverage.PagesInNavigation,
			result.NavigationCoverage.TotalPages)},
		[]string{"Status", w.getStatusText(result)},
	)
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	w.writeHealth(md, result.HealthScore)
	if report.Visibility != nil {
		w.writeVisibility(md, report.Visibility)
	}
	w.writeFindings(md, result)
}

// getStatusText returns the status text based on the worst issue.
func (w *MarkdownWriter) getStatusText(result *model.AnalysisResult) string {
	switch worstSeverity(result.HealthScore) {
	case model.SeverityCritical:
		return "🔴 Critical issues"
	case model.SeverityWarning:
		return "🟠 Warnings"
	case model.SeverityInfo:
		return "🔵 Minor issues"
	default:
		return "✅ Healthy"
	}
}

// worstSeverity returns the highest severity among the issues, or -1.
func worstSeverity(score model.HealthScore) model.Severity {
	worst := model.Severity(-1)
	for _, issue := range score.Issues {
		if issue.Severity > worst {
			worst = issue.Severity
		}
	}
	return worst
}

// writeHealth writes the score breakdown, a pie chart and an alert.
func (w *MarkdownWriter) writeHealth(md *markdown.Markdown, score model.HealthScore) {
	md.H2("Health Breakdown")
	md.PlainText("")

	if len(score.Issues) > 0 {
		rows := make([][]string, len(score.Issues))
		for i, issue := range score.Issues {
			rows[i] = []string{
				humanize(string(issue.Category)),
				issue.Severity.String(),
				strconv.Itoa(issue.Count),
				strconv.Itoa(issue.Weight),
				"-" + strconv.Itoa(issue.Deduction),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Category", "Severity", "Count", "Weight", "Deduction"},
			Rows:   rows,
		})
		md.PlainText("")
		w.writeIssueChart(md, score)
	}

	w.writeAlert(md, score)
}

// writeIssueChart writes a mermaid pie chart of issue counts by category.
func (w *MarkdownWriter) writeIssueChart(md *markdown.Markdown, score model.HealthScore) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issue Distribution"),
		piechart.WithShowData(true),
	)
	for _, issue := range score.Issues {
		chart.LabelAndIntValue(humanize(string(issue.Category)), uint64(issue.Count)) //nolint:gosec // counts are never negative
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the worst issue.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, score model.HealthScore) {
	count := func(sev model.Severity) int {
		n := 0
		for _, issue := range score.Issues {
			if issue.Severity == sev {
				n += issue.Count
			}
		}
		return n
	}

	switch worstSeverity(score) {
	case model.SeverityCritical:
		md.Cautionf(
			"Broken navigation or ambiguous paths detected! %d critical finding(s) require attention.",
			count(model.SeverityCritical),
		)
	case model.SeverityWarning:
		md.Warningf(
			"%d page(s) cannot be reached from the navigation.",
			count(model.SeverityWarning),
		)
	case model.SeverityInfo:
		md.Note("Only cosmetic issues detected.")
	default:
		md.Tip("No content integrity issues detected.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeVisibility(md *markdown.Markdown, v *model.VisibilityAnalysis) {
	md.H2("Visibility")
	md.PlainText("")

	rows := [][]string{
		{"Public", strconv.Itoa(v.PublicPages)},
		{"Restricted", strconv.Itoa(v.RestrictedPages)},
	}
	for _, id := range groupIDs(v) {
		rows = append(rows, []string{"Group `" + id.String() + "`", strconv.Itoa(len(v.ByGroup[id]))})
	}
	md.Table(markdown.TableSet{Header: []string{"Audience", "Links"}, Rows: rows})
	md.PlainText("")

	if v.PublicPages+v.RestrictedPages > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Navigation Visibility"),
			piechart.WithShowData(true),
		)
		if v.PublicPages > 0 {
			chart.LabelAndIntValue("Public", uint64(v.PublicPages)) //nolint:gosec // counts are never negative
		}
		if v.RestrictedPages > 0 {
			chart.LabelAndIntValue("Restricted", uint64(v.RestrictedPages)) //nolint:gosec // counts are never negative
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}
}

// writeFindings writes one table per finding kind.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H2("Findings")
	md.PlainText("")

	if !result.HasIssues() {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	if len(result.BrokenNavLinks) > 0 {
		rows := make([][]string, len(result.BrokenNavLinks))
		for i, l := range result.BrokenNavLinks {
			rows[i] = []string{orDash(l.Item.Label), "`" + l.Item.Target + "`", orDash(l.Locale), humanize(string(l.Reason))}
		}
		w.writeFindingTable(md, "### 🔴 Broken Navigation Links", []string{"Label", "Target", "Locale", "Reason"}, rows)
	}

	if len(result.DuplicatePaths) > 0 {
		rows := make([][]string, len(result.DuplicatePaths))
		for i, d := range result.DuplicatePaths {
			rows[i] = []string{"`" + displayPath(d.NormalizedPath) + "`", strconv.Itoa(len(d.Pages)), strings.Join(d.Paths, ", ")}
		}
		w.writeFindingTable(md, "### 🔴 Duplicate Paths", []string{"Normalized Path", "Pages", "Paths"}, rows)
	}

	if len(result.UnlistedPages) > 0 {
		rows := make([][]string, len(result.UnlistedPages))
		for i, u := range result.UnlistedPages {
			rows[i] = []string{"`" + displayPath(u.Page.Path) + "`", truncateString(u.Page.Title, 50), humanize(string(u.Reason))}
		}
		w.writeFindingTable(md, "### 🟠 Unlisted Pages", []string{"Path", "Title", "Reason"}, rows)
	}

	if len(result.TitleInconsistencies) > 0 {
		rows := make([][]string, len(result.TitleInconsistencies))
		for i, t := range result.TitleInconsistencies {
			rows[i] = []string{"`" + displayPath(t.Path) + "`", truncateString(t.NavLabel, 40), truncateString(t.PageTitle, 40)}
		}
		w.writeFindingTable(md, "### 🔵 Title Inconsistencies", []string{"Path", "Navigation Label", "Page Title"}, rows)
	}

	for _, issue := range result.HealthScore.Issues {
		info := model.GetCategoryInfo(issue.Category)
		md.Details(humanize(string(issue.Category)), info.Description+" "+info.Recommendation)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeFindingTable(md *markdown.Markdown, header string, columns []string, rows [][]string) {
	md.PlainText(header)
	md.PlainText("")
	md.Table(markdown.TableSet{Header: columns, Rows: rows})
	md.PlainText("")
}

// WriteOrphans outputs the orphan report in Markdown format.
func (w *MarkdownWriter) WriteOrphans(result *model.OrphanAnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("wikilens Orphan Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Analyzed At", result.AnalyzedAt.Format(timeLayout)},
			{"Total Pages", strconv.Itoa(result.TotalPages)},
			{"Orphaned Pages", strconv.Itoa(len(result.OrphanedPages))},
		},
	})
	md.PlainText("")

	if len(result.OrphanedPages) == 0 {
		md.Tip("Every page is linked from at least one other page.")
		md.PlainText("")
	} else {
		md.Warningf("%d page(s) have no incoming links.", len(result.OrphanedPages))
		md.PlainText("")

		rows := make([][]string, len(result.OrphanedPages))
		for i, o := range result.OrphanedPages {
			rows[i] = []string{
				"`" + displayPath(o.Path) + "`",
				truncateString(o.Title, 50),
				humanize(string(o.Reason)),
				strconv.Itoa(o.OutgoingLinks),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Path", "Title", "Reason", "Outgoing Links"},
			Rows:   rows,
		})
		md.PlainText("")
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteDiff outputs the snapshot comparison in Markdown format.
func (w *MarkdownWriter) WriteDiff(result *model.ExportDiffResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("wikilens Diff Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Compared At", result.ComparedAt.Format(timeLayout)},
			{"Total Changes", strconv.Itoa(result.Summary.TotalChanges)},
			{"Page Changes", strconv.Itoa(result.Summary.PageChanges)},
			{"Navigation Changes", strconv.Itoa(result.Summary.NavChanges)},
		},
	})
	md.PlainText("")

	if !result.HasChanges() {
		md.Note("No changes detected between the snapshots.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	if n := len(result.PagesAdded) + len(result.PagesRemoved) + len(result.PagesModified); n > 0 {
		md.H2("Pages")
		md.PlainText("")
		rows := make([][]string, 0, n)
		for _, p := range result.PagesAdded {
			rows = append(rows, []string{"➕ Added", p.ID.String(), "`" + displayPath(p.Path) + "`", p.Title, "-"})
		}
		for _, p := range result.PagesRemoved {
			rows = append(rows, []string{"➖ Removed", p.ID.String(), "`" + displayPath(p.Path) + "`", p.Title, "-"})
		}
		for _, m := range result.PagesModified {
			rows = append(rows, []string{"✏️ Modified", m.ID.String(), "`" + displayPath(m.After.Path) + "`", m.After.Title, strings.Join(m.Changes, ", ")})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Change", "ID", "Path", "Title", "Fields"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if n := len(result.NavItemsAdded) + len(result.NavItemsRemoved) + len(result.NavItemsModified); n > 0 {
		md.H2("Navigation")
		md.PlainText("")
		rows := make([][]string, 0, n)
		for _, item := range result.NavItemsAdded {
			rows = append(rows, []string{"➕ Added", item.ID.String(), orDash(item.Label), "`" + item.Target + "`", "-"})
		}
		for _, item := range result.NavItemsRemoved {
			rows = append(rows, []string{"➖ Removed", item.ID.String(), orDash(item.Label), "`" + item.Target + "`", "-"})
		}
		for _, m := range result.NavItemsModified {
			rows = append(rows, []string{"✏️ Modified", m.ID.String(), orDash(m.After.Label), "`" + m.After.Target + "`", strings.Join(m.Changes, ", ")})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Change", "ID", "Label", "Target", "Fields"},
			Rows:   rows,
		})
		md.PlainText("")
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [wikilens](https://github.com/nao1215/wikilens)*")
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
