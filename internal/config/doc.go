// Package config loads, normalizes, and validates ytt configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENAI_API_KEY and YTT_OUTPUT_DIR. DownloadsDir computes the default
// transcript directory for the running platform on every call.
//
// Always obtain settings through this package so downstream code receives
// sanitized values, canonical log formats, and clear validation errors.
package config
