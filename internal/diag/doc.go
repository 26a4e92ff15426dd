// Package diag defines the diagnostic model shared by every checker.
//
// # Purpose
//
//   - Provide a small, deterministic record (Diagnostic) describing a
//     positioned problem: line, column, message and severity.
//   - Offer light-weight utilities (Reporter, Bag) that let checkers emit
//     diagnostics without coupling to storage or formatting.
//   - Summarise a result into error and warning counts (Summary).
//
// # Scope
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt;
// orchestration over files lives in internal/driver.
//
// # Ordering
//
// Diagnostics keep the order in which a checker produced them. Neither Bag
// nor Summarize sorts or deduplicates; overlapping heuristics may report the
// same line twice and both entries survive. DedupReporter exists for callers
// that explicitly want to collapse repeats.
//
// # Positions
//
// Line is 1-based and always within the checked document (whole-document
// findings anchor at line 1 or the last line). Column is 1-based; 0 means
// the heuristic did not compute a column.
//
// # Codes
//
// Code groups diagnostics by the heuristic that produced them:
//
//	BRK1xxx  paired delimiters and tags
//	HEU2xxx  line heuristics and generic text checks
//	VAL3xxx  full-buffer parser validation
//	IO4xxx   file loading (driver only)
package diag
