// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown for pull requests and wikis
//
// Every writer can render the three result kinds wikilens produces: an
// analysis report (optionally a batch of them), an orphan report and a
// snapshot diff. The result data structures live in the model package.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
