// Package build provides the canonical report build pipeline.
//
// A build runs TypeDoc, cloc and the coverage reporter, then records which
// artifacts are available in the docs configuration and the report manifest.
// Availability is threaded through Result rather than shared state, so the
// individual stages can also be run alone by the CLI.
package build
