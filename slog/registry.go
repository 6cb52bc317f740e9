package slog

import (
	"log/slog"

	"github.com/fwojciec/novelex"
)

// Ensure LoggingRegistry implements novelex.SourceRegistry.
var _ novelex.SourceRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a SourceRegistry so that every source it hands
// out logs its operations.
type LoggingRegistry struct {
	next   novelex.SourceRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next novelex.SourceRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get returns the wrapped registry's source decorated with a LoggingSource.
func (r *LoggingRegistry) Get(id string) (novelex.Source, error) {
	source, err := r.next.Get(id)
	if err != nil {
		r.logger.Info("source lookup", "site", id, "err", err)
		return nil, err
	}
	return NewLoggingSource(source, r.logger), nil
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(source novelex.Source) {
	r.next.Register(source)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []*novelex.Site {
	return r.next.List()
}
