package ports

import (
	"context"
	"io"
)

// LineSource yields raw NMEA lines from a file, stdin or a serial device.
type LineSource interface {
	// Open prepares the source. offset is honored by seekable sources only.
	Open(ctx context.Context, offset int64) error

	// Next returns the next line without its terminator.
	// Returns io.EOF when no more lines are currently available; followed
	// sources may produce more later and the caller should poll.
	Next(ctx context.Context) (string, error)

	// Position returns the byte offset just past the last returned line.
	// Sources that cannot seek return -1.
	Position() int64

	// Close releases all resources held by the source.
	Close() error
}

// ErrNoMoreLines indicates that the source is drained for now.
var ErrNoMoreLines = io.EOF

// Waiter is implemented by sources that know how to wait for more input
// (file change notifications, serial read timeouts). Sources without it are
// polled at a fixed interval.
type Waiter interface {
	// Wait blocks until more input may be available or ctx is done.
	Wait(ctx context.Context) error
}
