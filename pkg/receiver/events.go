package receiver

import (
	"github.com/bft-labs/aisparser/internal/app"
	"github.com/bft-labs/aisparser/pkg/vdm"
	"github.com/bft-labs/aisparser/pkg/vessel"
)

// State is the lifecycle state of a Receiver.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

func (s State) String() string { return app.State(s).String() }

// StateChangeEvent reports a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// RecordEvent carries one decoded message.
type RecordEvent struct {
	Record Record
}

// VesselEvent carries the merged vessel state after a message.
type VesselEvent struct {
	Vessel vessel.Vessel
}

// DecodeErrorEvent reports a rejected line.
type DecodeErrorEvent struct {
	Line  uint64
	Raw   string
	Error error
}

// FragmentDropEvent reports an incomplete fragment group that was discarded.
type FragmentDropEvent struct {
	Drop vdm.Drop
}

// EventHandler receives receiver events. Methods are called synchronously
// from the pipeline goroutine and must return quickly.
type EventHandler interface {
	OnStateChange(e StateChangeEvent)
	OnRecord(e RecordEvent)
	OnVesselUpdate(e VesselEvent)
	OnDecodeError(e DecodeErrorEvent)
	OnFragmentDrop(e FragmentDropEvent)
}

// BaseEventHandler implements EventHandler with no-ops; embed it to handle
// only some events.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)   {}
func (BaseEventHandler) OnRecord(RecordEvent)             {}
func (BaseEventHandler) OnVesselUpdate(VesselEvent)       {}
func (BaseEventHandler) OnDecodeError(DecodeErrorEvent)   {}
func (BaseEventHandler) OnFragmentDrop(FragmentDropEvent) {}

// eventEmitter adapts EventHandler to the internal emitter interfaces.
type eventEmitter struct {
	handler EventHandler
}

func (e *eventEmitter) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{Previous: State(previous), Current: State(current), Reason: reason})
}

func (e *eventEmitter) OnRecord(rec Record) {
	if e.handler != nil {
		e.handler.OnRecord(RecordEvent{Record: rec})
	}
}

func (e *eventEmitter) OnVesselUpdate(v vessel.Vessel) {
	if e.handler != nil {
		e.handler.OnVesselUpdate(VesselEvent{Vessel: v})
	}
}

func (e *eventEmitter) OnDecodeError(line uint64, raw string, err error) {
	if e.handler != nil {
		e.handler.OnDecodeError(DecodeErrorEvent{Line: line, Raw: raw, Error: err})
	}
}

func (e *eventEmitter) OnFragmentDrop(d vdm.Drop) {
	if e.handler != nil {
		e.handler.OnFragmentDrop(FragmentDropEvent{Drop: d})
	}
}
