// Package diag defines the diagnostic model shared by every compilation phase.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for problems found by the
//     lexer, the parser (names and types included) and the code generator.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier with a stable string form (LEX1001).
//   - Message: short human oriented text.
//   - Primary: the source.Span pointing at the problem.
//   - Notes: optional secondary spans, e.g. "previously declared here".
//
// # Codes
//
// Codes are grouped by thousand: 1xxx lexical, 2xxx syntax, 3xxx semantic
// (names and coercions), 4xxx code generation, 5xxx IO, 6xxx project
// manifest. New codes are appended, never renumbered, since JSON consumers
// key on the ID.
package diag
