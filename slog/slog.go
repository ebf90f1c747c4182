// Package slog provides logging decorators for sitesearch services.
//
// Each decorator wraps an implementation of a sitesearch interface and
// logs the operation with its duration and outcome. The CLI installs them
// when verbose output is requested.
package slog
