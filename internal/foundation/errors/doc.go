// Package errors provides the classified error primitives used across patchexport.
//
// Every pipeline stage reports failures as a ClassifiedError so the
// orchestrator and the CLI can tell a missing input file from a malformed
// graph or a document that lacks a required anchor.
//
// Key features:
//   - ErrorCategory: failure class (missing_input, malformed_data, missing_anchor, no_match, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, cause and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: user-facing formatting and exit handling
//
// Example usage:
//
//	err := errors.MissingAnchor("no closing </head> tag").
//		WithContext("html_path", htmlPath).
//		Build()
package errors
