// Package app wires the review dashboard service together: it loads
// configuration, initializes logging and OpenTelemetry, loads the review
// report into the in-memory table, and assembles the Chi router with the
// dashboard and health handlers plus the embedded frontend.
//
// Startup is fail-fast: a missing report file or a report without the
// required columns aborts NewApplication before the server starts, so a
// running process always has a queryable table.
package app
