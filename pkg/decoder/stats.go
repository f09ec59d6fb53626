package decoder

import "sync/atomic"

// Stats counts line outcomes since the decoder was created.
type Stats struct {
	Lines       uint64 `json:"lines" yaml:"lines"`
	Messages    uint64 `json:"messages" yaml:"messages"`
	Pending     uint64 `json:"pending" yaml:"pending"`
	Skipped     uint64 `json:"skipped" yaml:"skipped"`
	Checksum    uint64 `json:"checksum_errors" yaml:"checksum_errors"`
	Desyncs     uint64 `json:"desyncs" yaml:"desyncs"`
	Dropped     uint64 `json:"dropped_groups" yaml:"dropped_groups"`
	Unsupported uint64 `json:"unsupported" yaml:"unsupported"`
	Payload     uint64 `json:"payload_errors" yaml:"payload_errors"`
	Malformed   uint64 `json:"malformed" yaml:"malformed"`

	// ByType counts decoded messages per message type.
	ByType map[uint8]uint64 `json:"by_type,omitempty" yaml:"by_type,omitempty"`
}

// Errors returns the number of rejected lines, not counting skipped
// non-AIS sentences.
func (s Stats) Errors() uint64 {
	return s.Checksum + s.Desyncs + s.Unsupported + s.Payload + s.Malformed
}

type counters struct {
	lines, messages, pending, skipped atomic.Uint64
	checksum, desyncs, dropped        atomic.Uint64
	unsupported, payload, malformed   atomic.Uint64
	byType                            [64]atomic.Uint64
}

func (c *counters) snapshot() Stats {
	s := Stats{
		Lines:       c.lines.Load(),
		Messages:    c.messages.Load(),
		Pending:     c.pending.Load(),
		Skipped:     c.skipped.Load(),
		Checksum:    c.checksum.Load(),
		Desyncs:     c.desyncs.Load(),
		Dropped:     c.dropped.Load(),
		Unsupported: c.unsupported.Load(),
		Payload:     c.payload.Load(),
		Malformed:   c.malformed.Load(),
	}
	for i := range c.byType {
		if n := c.byType[i].Load(); n > 0 {
			if s.ByType == nil {
				s.ByType = make(map[uint8]uint64)
			}
			s.ByType[uint8(i)] = n
		}
	}
	return s
}
