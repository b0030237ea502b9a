// Package slog provides logging decorators for asof services.
package slog
