package receiver

import (
	"time"

	"github.com/bft-labs/aisparser/internal/ports"
	"github.com/bft-labs/aisparser/pkg/log"
)

// Record is one decoded message as handed to sinks and event handlers.
type Record = ports.Record

// Sink receives decoded records.
type Sink = ports.RecordSink

// LineSource yields raw NMEA lines.
type LineSource = ports.LineSource

// Option configures optional behavior of a Receiver.
type Option func(*options)

type options struct {
	logger       log.Logger
	eventHandler EventHandler
	plugins      []Plugin
	source       LineSource
	sink         Sink
	now          func() time.Time
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger(), now: time.Now}
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler sets a handler for receiver events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) { o.eventHandler = handler }
}

// WithPlugin registers a plugin.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) { o.plugins = append(o.plugins, plugin) }
}

// WithSource replaces the file or serial source built from Config.
func WithSource(src LineSource) Option {
	return func(o *options) { o.source = src }
}

// WithSink sets where records are written. Without a sink records only
// reach the event handler and the vessel cache.
func WithSink(sink Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithClock sets the time source for the cache, the reassembler and records.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
