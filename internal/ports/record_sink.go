package ports

import (
	"context"
	"time"
)

// Record is one decoded message as written by a sink.
type Record struct {
	Session  string    `json:"session" yaml:"session"`
	Line     uint64    `json:"line" yaml:"line"`
	Received time.Time `json:"received" yaml:"received"`
	Channel  string    `json:"channel,omitempty" yaml:"channel,omitempty"`
	Own      bool      `json:"own,omitempty" yaml:"own,omitempty"`
	Type     uint8     `json:"type" yaml:"type"`
	MMSI     uint32    `json:"mmsi" yaml:"mmsi"`
	Kind     string    `json:"kind" yaml:"kind"`
	Message  any       `json:"message" yaml:"message"`
	Sentence string    `json:"sentence,omitempty" yaml:"sentence,omitempty"`
}

// RecordSink receives decoded records.
type RecordSink interface {
	// Write emits a single record.
	Write(ctx context.Context, rec Record) error

	// Close flushes buffered output.
	Close() error
}

// Flusher is implemented by sinks that buffer output.
type Flusher interface {
	Flush() error
}
