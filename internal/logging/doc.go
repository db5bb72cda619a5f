// Package logging provides slog attribute helpers for consistent
// structured logging across the codebase.
//
// Chat identifiers are treated like PII: GroupHash logs a short hash of a
// group or user id so log entries can be correlated without exposing the
// raw identifier, and SanitizeToken masks credentials entirely.
package logging
