package report

import (
	"io"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/wikilens/internal/model"
)

// Writer defines the interface for report output.
// Implementations write analysis, orphan and diff results in various formats.
type Writer interface {
	// WriteAnalysis outputs a single analysis report.
	// Returns the number of bytes written and any error encountered.
	WriteAnalysis(report *model.AnalysisReport) (int, error)

	// WriteBatch outputs the reports of a batch analysis in input order.
	WriteBatch(reports []*model.AnalysisReport) (int, error)

	// WriteOrphans outputs a link-graph orphan report.
	WriteOrphans(result *model.OrphanAnalysisResult) (int, error)

	// WriteDiff outputs a snapshot comparison.
	WriteDiff(result *model.ExportDiffResult) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteAnalysis outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteAnalysis(report *model.AnalysisReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteAnalysis(report) })
}

// WriteBatch outputs the batch to all configured Writers.
func (m *MultiWriter) WriteBatch(reports []*model.AnalysisReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteBatch(reports) })
}

// WriteOrphans outputs the orphan report to all configured Writers.
func (m *MultiWriter) WriteOrphans(result *model.OrphanAnalysisResult) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteOrphans(result) })
}

// WriteDiff outputs the comparison to all configured Writers.
func (m *MultiWriter) WriteDiff(result *model.ExportDiffResult) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteDiff(result) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// timeLayout is the layout of timestamps in human-readable reports.
const timeLayout = "2006-01-02 15:04:05 MST"

// humanize turns a machine-readable code such as "page_not_found" into a
// display label such as "Page Not Found".
func humanize(code string) string {
	// Casers are stateful and must not be shared between goroutines.
	return cases.Title(language.English).String(strings.ReplaceAll(code, "_", " "))
}

// displayPath returns the path with a leading slash, as readers see it.
func displayPath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// groupIDs returns the visibility group ids of a report in ascending order.
func groupIDs(v *model.VisibilityAnalysis) []model.ID {
	ids := make([]model.ID, 0, len(v.ByGroup))
	for id := range v.ByGroup {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
