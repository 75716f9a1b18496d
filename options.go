/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package definitionhelper

import (
	"go.uber.org/zap"

	"github.com/StarCoreSE/DefinitionHelper/monitoring"
)

// Options configures a Registry.
type Options struct {
	Logger  *zap.Logger
	Metrics *monitoring.Metrics
}

// Option is a functional option for configuring a Registry
type Option func(*Options)

// DefaultOptions returns a no-op logger and no metrics.
func DefaultOptions() Options {
	return Options{
		Logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used for informational mutation logs
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithMetrics sets the Prometheus collectors the registry reports to
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(opts *Options) {
		opts.Metrics = metrics
	}
}
