/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package api

import (
	"go.uber.org/zap"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
	"github.com/StarCoreSE/DefinitionHelper/monitoring"
)

// DefaultChannel is the bus channel the provider announces on.
const DefaultChannel int64 = 8754

// Options configures a Sender or Client.
type Options struct {
	Channel int64
	Version int
	Logger  *zap.Logger
	Metrics *monitoring.Metrics
}

// Option is a functional option for a Sender or Client
type Option func(*Options)

// DefaultOptions returns the default channel and API version.
func DefaultOptions() Options {
	return Options{
		Channel: DefaultChannel,
		Version: definitionhelper.APIVersion,
		Logger:  zap.NewNop(),
	}
}

// WithChannel sets the bus channel
func WithChannel(channel int64) Option {
	return func(opts *Options) {
		opts.Channel = channel
	}
}

// WithVersion sets the announced API version
func WithVersion(version int) Option {
	return func(opts *Options) {
		opts.Version = version
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithMetrics sets the collectors announcements are counted in
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(opts *Options) {
		opts.Metrics = metrics
	}
}

func buildOptions(opts []Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
