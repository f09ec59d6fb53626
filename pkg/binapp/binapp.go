package binapp

import (
	"fmt"
	"sort"

	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// Designated area codes with registered applications.
const (
	DACInternational uint16 = 1
	DACCanada        uint16 = 316
	DACUnitedStates  uint16 = 366
)

// Application is a decoded binary application body.
type Application interface {
	// Name identifies the application, for example "seaway.water_level".
	Name() string
}

// Context is the addressing envelope of a binary message together with
// its application data region.
type Context struct {
	MessageType uint8
	DAC         uint16
	FI          uint8
	Data        *sixbit.Payload
}

// Key identifies a registered decoder. SubID is -1 for families that do
// not carry a sub-message id.
type Key struct {
	DAC   uint16
	FI    uint8
	SubID int
}

func (k Key) String() string {
	if k.SubID < 0 {
		return fmt.Sprintf("%d/%d", k.DAC, k.FI)
	}
	return fmt.Sprintf("%d/%d/%d", k.DAC, k.FI, k.SubID)
}

// DecodeFunc decodes an application body. The cursor is positioned after
// the sub-message id, if any.
type DecodeFunc func(c *sixbit.Cursor) Application

type family struct {
	subID bool
}

var (
	registry = make(map[Key]DecodeFunc)
	families = make(map[Key]family)
)

// Register adds a decoder for every DAC in dacs. subID < 0 registers a
// family without sub-message ids. Registering a key twice panics.
func Register(dacs []uint16, fi uint8, subID int, fn DecodeFunc) {
	for _, dac := range dacs {
		key := Key{DAC: dac, FI: fi, SubID: subID}
		if _, exists := registry[key]; exists {
			panic(fmt.Sprintf("binapp: decoder for %v already registered", key))
		}
		fk := Key{DAC: dac, FI: fi, SubID: -1}
		if f, ok := families[fk]; ok && f.subID != (subID >= 0) {
			panic(fmt.Sprintf("binapp: %v mixes sub-id and plain decoders", fk))
		}
		families[fk] = family{subID: subID >= 0}
		registry[key] = fn
	}
}

// Registered lists the registered keys in a stable order.
func Registered() []Key {
	keys := make([]Key, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.DAC != b.DAC {
			return a.DAC < b.DAC
		}
		if a.FI != b.FI {
			return a.FI < b.FI
		}
		return a.SubID < b.SubID
	})
	return keys
}

// Decode looks up the decoder for ctx and runs it. It never fails: an
// unregistered combination, or a body that is too short for its layout,
// yields an *Unknown that keeps the raw data.
func Decode(ctx Context) Application {
	if ctx.Data == nil {
		return &Unknown{MessageType: ctx.MessageType, DAC: ctx.DAC, FI: ctx.FI, SubID: -1}
	}

	key := Key{DAC: ctx.DAC, FI: ctx.FI, SubID: -1}
	f, ok := families[key]
	if !ok {
		return unknown(ctx, key, nil)
	}

	c := sixbit.NewCursor(ctx.Data)
	if f.subID {
		c.Skip(2)
		key.SubID = int(c.Uint(6))
		if err := c.Err(); err != nil {
			return unknown(ctx, key, err)
		}
	}

	fn, ok := registry[key]
	if !ok {
		return unknown(ctx, key, nil)
	}
	app := fn(c)
	if err := c.Err(); err != nil {
		return unknown(ctx, key, err)
	}
	return app
}

// repeated reads at least one record and then as many more as fit, up to max.
func repeated[T any](c *sixbit.Cursor, size, max int, read func(*sixbit.Cursor) T) []T {
	out := []T{read(c)}
	for len(out) < max && c.Remaining() >= size && c.Err() == nil {
		out = append(out, read(c))
	}
	return out
}
