package binapp

import "github.com/bft-labs/aisparser/pkg/sixbit"

// Unknown is returned for binary applications without a registered
// decoder, or whose body did not match the registered layout. The
// envelope and raw data are preserved.
type Unknown struct {
	MessageType uint8           `json:"message_type" yaml:"message_type"`
	DAC         uint16          `json:"dac" yaml:"dac"`
	FI          uint8           `json:"fi" yaml:"fi"`
	SubID       int             `json:"sub_id" yaml:"sub_id"`
	Data        *sixbit.Payload `json:"data,omitempty" yaml:"data,omitempty"`
	Reason      string          `json:"reason,omitempty" yaml:"reason,omitempty"`

	err error
}

func unknown(ctx Context, key Key, err error) *Unknown {
	u := &Unknown{
		MessageType: ctx.MessageType,
		DAC:         ctx.DAC,
		FI:          ctx.FI,
		SubID:       key.SubID,
		Data:        ctx.Data,
		err:         err,
	}
	if err != nil {
		u.Reason = err.Error()
	}
	return u
}

func (*Unknown) Name() string { return "unknown" }

// Err returns the decode error when a registered layout did not fit,
// or nil when no decoder was registered.
func (u *Unknown) Err() error { return u.err }
