// Package main hosts the ytt CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once per invocation, applies
// flag overrides on top of it, and hands the result to the internal packages:
// the transcription pipeline, the transcript reformatter, the dependency
// report, and configuration scaffolding. Logs go to stderr so stdout carries
// only command output.
package main
