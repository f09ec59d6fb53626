// Package aisparser decodes AIS AIVDM/AIVDO sentences and runs a receiver
// that turns a stream of NMEA lines into structured records.
//
// Decoding a stream line by line:
//
//	dec := aisparser.NewDecoder()
//	for _, line := range lines {
//	    res, err := dec.Decode(line)
//	    if err != nil || res.Pending {
//	        continue
//	    }
//	    fmt.Println(res.Message.GetHeader().MMSI)
//	}
//
// Running a receiver over a file until it is drained:
//
//	cfg := aisparser.DefaultConfig()
//	cfg.Input = "/var/log/ais.nmea"
//	if err := aisparser.Run(ctx, cfg, receiver.WithSink(sink)); err != nil {
//	    log.Fatal(err)
//	}
package aisparser

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	"github.com/bft-labs/aisparser/internal/domain"
	"github.com/bft-labs/aisparser/pkg/decoder"
	"github.com/bft-labs/aisparser/pkg/receiver"
)

// Config configures a receiver. Use DefaultConfig for sensible defaults.
type Config = receiver.Config

// Decoder decodes the lines of one NMEA stream.
type Decoder = decoder.Decoder

// Errors returned by decoding and by the receiver lifecycle.
var (
	ErrMissingStartDelimiter  = domain.ErrMissingStartDelimiter
	ErrChecksumMismatch       = domain.ErrChecksumMismatch
	ErrMissingChecksum        = domain.ErrMissingChecksum
	ErrMalformedSentence      = domain.ErrMalformedSentence
	ErrNotAIS                 = domain.ErrNotAIS
	ErrReassemblyDesync       = domain.ErrReassemblyDesync
	ErrInvalidCharacter       = domain.ErrInvalidCharacter
	ErrBitRangeExceeded       = domain.ErrBitRangeExceeded
	ErrUnsupportedMessageType = domain.ErrUnsupportedMessageType

	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
)

// DefaultConfig reads stdin until EOF with the default checksum policy.
func DefaultConfig() Config {
	cfg := Config{Input: "-"}
	cfg.SetDefaults()
	return cfg
}

// NewDecoder creates a Decoder for one stream.
func NewDecoder(opts ...decoder.Option) *Decoder {
	return decoder.New(opts...)
}

// Run starts a receiver and blocks until its input is drained, it fails,
// or ctx is canceled. Cancellation is a clean stop and returns nil.
func Run(ctx context.Context, cfg Config, opts ...receiver.Option) error {
	r, err := receiver.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := r.Start(ctx); err != nil {
		return err
	}

	select {
	case <-r.Done():
		return r.Err()
	case <-ctx.Done():
	}

	err = r.Stop()
	if errors.Is(err, ErrNotRunning) {
		err = nil
	}
	return multierr.Append(err, r.Err())
}
