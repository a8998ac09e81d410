package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoInput is returned when neither an export pair nor a batch
	// directory is given.
	ErrNoInput = errors.New("no input specified: provide --pages and --nav, or --batch")

	// ErrMixedInputs is returned when --batch is combined with --pages or --nav.
	ErrMixedInputs = errors.New("conflicting inputs: --batch cannot be combined with --pages or --nav")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMinScore is returned when the minimum health score is
	// outside 0..100.
	ErrInvalidMinScore = errors.New("invalid minimum health score: must be between 0 and 100")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
