/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package api

import (
	"go.uber.org/zap"

	definitionhelper "github.com/StarCoreSE/DefinitionHelper"
)

// Sender publishes a registry's method table on a bus channel.
type Sender struct {
	bus     Bus
	reg     *definitionhelper.Registry
	methods MethodTable
	opts    Options
	loaded  bool
}

// NewSender creates a Sender for reg. Peer log calls go to logger.
func NewSender(bus Bus, reg *definitionhelper.Registry, logger *zap.Logger, opts ...Option) *Sender {
	options := buildOptions(append([]Option{WithLogger(logger)}, opts...))
	return &Sender{
		bus:     bus,
		reg:     reg,
		methods: Methods(reg, options.Logger),
		opts:    options,
	}
}

// Methods returns the table the sender announces.
func (s *Sender) Methods() MethodTable {
	return s.methods
}

// Load starts listening for requests and announces the table to modules that
// loaded earlier.
func (s *Sender) Load() {
	if s.loaded {
		return
	}
	s.loaded = true

	s.bus.RegisterMessageHandler(s.opts.Channel, s)
	s.opts.Logger.Info("Definition API sender ready",
		zap.Int64("channel", s.opts.Channel),
		zap.Int("version", s.opts.Version),
	)
	s.announce(s.methods, "load")
}

// Unload announces a nil table, stops listening and closes the registry.
func (s *Sender) Unload() {
	if !s.loaded {
		return
	}
	s.loaded = false

	s.opts.Logger.Info("Closing definition API sender")
	s.announce(nil, "unload")
	s.bus.UnregisterMessageHandler(s.opts.Channel, s)
	s.reg.Close()
}

// HandleMessage answers any string message with a fresh announcement. Other
// messages, including announcements, are ignored.
func (s *Sender) HandleMessage(channel int64, data any) {
	if channel != s.opts.Channel {
		return
	}
	if _, ok := data.(string); !ok {
		return
	}

	s.announce(s.methods, "request")
	s.opts.Logger.Info("Definition API sender sent methods")
}

func (s *Sender) announce(methods MethodTable, reason string) {
	s.opts.Metrics.RecordAnnouncement(reason)
	s.bus.SendMessage(s.opts.Channel, Announcement{Version: s.opts.Version, Methods: methods})
}
