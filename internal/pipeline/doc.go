// Package pipeline provides a framework for executing analysis steps in sequence.
//
// The pipeline pattern is used to process a snapshot through multiple
// stages: loading and validating the exports, structural analysis, finding
// filters and history recording. Each stage is implemented as a Step that
// receives the current Job and can modify it.
//
// The pipeline supports both individual analyses and batch processing of
// several snapshot directories with concurrency control using errgroup.
package pipeline
