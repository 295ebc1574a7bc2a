// Package diag defines the diagnostic model shared by the whole lint pipeline.
//
// # Purpose
//
//   - Provide deterministic data structures for findings parsed out of raw
//     toolchain output.
//   - Offer a light-weight bounded collection (Bag) so callers can gather
//     diagnostics without coupling to formatting or storage layers.
//
// # Scope
//
// Package diag performs no parsing, formatting, IO, or CLI integration.
// Parsing lives in internal/parse, rendering in internal/diagfmt, and
// orchestration in internal/lint.
//
// # Data model
//
// Diagnostic is the central record. It carries the reported path (verbatim
// from the toolchain, possibly relative to the build working directory), the
// 1-based line/column pair, the span pair the toolchain duplicates after it,
// a Severity, and the message text.
//
// Severity is a three-value enum matching the keywords the toolchain prints:
// warning, error, fatal error. Error and fatal error are both error-class;
// use IsError when deciding exit status.
//
// # Ordering
//
// A Bag preserves insertion order and never reorders its items. Diagnostic
// order is user-visible: it is the line order of the raw toolchain output,
// shown to the user top to bottom.
package diag
