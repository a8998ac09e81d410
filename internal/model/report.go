package model

// AnalysisReport is the unit handed to report writers after an analysis.
// It bundles the structural findings with the visibility breakdown and the
// context the run was executed in.
type AnalysisReport struct {
	// Instance labels the analyzed wiki instance.
	Instance string `json:"instance,omitempty"`

	// Label is the display name of the instance.
	Label string `json:"label,omitempty"`

	// RunID identifies the analysis run in the history database.
	RunID string `json:"runId,omitempty"`

	// Source describes where the snapshot was read from, such as a
	// directory in batch mode.
	Source string `json:"source,omitempty"`

	// Pages holds the page counts of the analyzed export.
	Pages PageSummary `json:"pages"`

	// Result is the structural analysis. It is nil when Error is set.
	Result *AnalysisResult `json:"result,omitempty"`

	// Visibility is the navigation visibility breakdown.
	Visibility *VisibilityAnalysis `json:"visibility,omitempty"`

	// Error is set when the snapshot could not be analyzed.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the analysis could not be performed.
func (r *AnalysisReport) Failed() bool {
	return r.Error != "" || r.Result == nil
}

// InstanceName returns the instance with its label, such as "prod (Docs)".
func (r *AnalysisReport) InstanceName() string {
	if r.Label == "" || r.Label == r.Instance {
		return r.Instance
	}
	return r.Instance + " (" + r.Label + ")"
}
