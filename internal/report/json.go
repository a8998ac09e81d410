package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/wikilens/internal/model"
)

// Report kinds carried in the JSON wrapper.
const (
	KindAnalysis = "analysis"
	KindBatch    = "batch"
	KindOrphans  = "orphans"
	KindDiff     = "diff"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
// Every document is wrapped in a JSONReport that records the wikilens
// version and the kind of result it carries.
type JSONWriter struct {
	baseWriter

	// version is the wikilens version recorded in every document.
	version string

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// WithVersion sets the version string recorded in the wrapper.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		version:      "dev",
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport is the versioned wrapper of every JSON document.
// Exactly one of the result fields is set, as named by Kind.
type JSONReport struct {
	// Version is the wikilens version that generated this report.
	Version string `json:"version"`

	// Kind names the result carried by the document.
	Kind string `json:"kind"`

	Analysis *model.AnalysisReport       `json:"analysis,omitempty"`
	Batch    []*model.AnalysisReport     `json:"batch,omitempty"`
	Orphans  *model.OrphanAnalysisResult `json:"orphans,omitempty"`
	Diff     *model.ExportDiffResult     `json:"diff,omitempty"`
}

// WriteAnalysis outputs the analysis report in JSON format.
func (w *JSONWriter) WriteAnalysis(report *model.AnalysisReport) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Kind: KindAnalysis, Analysis: report})
}

// WriteBatch outputs all batch reports in a single JSON document.
func (w *JSONWriter) WriteBatch(reports []*model.AnalysisReport) (int, error) {
	if reports == nil {
		reports = []*model.AnalysisReport{}
	}
	return w.writeJSON(&JSONReport{Version: w.version, Kind: KindBatch, Batch: reports})
}

// WriteOrphans outputs the orphan report in JSON format.
func (w *JSONWriter) WriteOrphans(result *model.OrphanAnalysisResult) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Kind: KindOrphans, Orphans: result})
}

// WriteDiff outputs the snapshot comparison in JSON format.
func (w *JSONWriter) WriteDiff(result *model.ExportDiffResult) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Kind: KindDiff, Diff: result})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
