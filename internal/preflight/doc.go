// Package preflight provides readiness checks for the external binaries,
// services, and filesystem paths that ytt depends on.
//
// These checks run in two contexts:
//   - The transcribe pipeline verifies required binaries and the output
//     directory before downloading anything, so a doomed run fails fast.
//   - The "ytt deps" command renders the same checks as a table.
//
// Each check is gated by its config toggle; disabled features are skipped or
// reported as optional.
package preflight
