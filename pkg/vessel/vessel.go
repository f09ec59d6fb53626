package vessel

import (
	"time"

	"github.com/bft-labs/aisparser/pkg/ais"
	"github.com/bft-labs/aisparser/pkg/position"
)

// Station classes derived from the message types a station sends.
const (
	ClassA        = "A"
	ClassB        = "B"
	ClassBase     = "base"
	ClassAtoN     = "aton"
	ClassAircraft = "sar"
)

// Vessel is the merged state of one station. Static fields keep their
// last reported value until a newer static message replaces them.
type Vessel struct {
	MMSI  uint32 `json:"mmsi" yaml:"mmsi"`
	Class string `json:"class,omitempty" yaml:"class,omitempty"`

	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	CallSign    string         `json:"callsign,omitempty" yaml:"callsign,omitempty"`
	IMO         uint32         `json:"imo,omitempty" yaml:"imo,omitempty"`
	ShipType    uint8          `json:"ship_type,omitempty" yaml:"ship_type,omitempty"`
	Dimensions  ais.Dimensions `json:"dimensions" yaml:"dimensions"`
	Destination string         `json:"destination,omitempty" yaml:"destination,omitempty"`
	ETA         *ais.ETA       `json:"eta,omitempty" yaml:"eta,omitempty"`
	Draught     uint8          `json:"draught,omitempty" yaml:"draught,omitempty"`
	Position    position.Point `json:"position" yaml:"position"`
	SOG         uint16         `json:"sog" yaml:"sog"`
	COG         uint16         `json:"cog" yaml:"cog"`
	Heading     uint16         `json:"heading" yaml:"heading"`
	NavStatus   uint8          `json:"nav_status" yaml:"nav_status"`

	LastType   uint8     `json:"last_type" yaml:"last_type"`
	Messages   uint64    `json:"messages" yaml:"messages"`
	FirstSeen  time.Time `json:"first_seen" yaml:"first_seen"`
	LastSeen   time.Time `json:"last_seen" yaml:"last_seen"`
	PositionAt time.Time `json:"position_at,omitempty" yaml:"position_at,omitempty"`
}

// HasPosition reports whether a usable position has been received.
func (v Vessel) HasPosition() bool {
	return !v.PositionAt.IsZero() && v.Position.Available()
}

// merge applies m to v. It returns false for messages that carry no
// station state, such as acknowledgements and binary messages.
func (v *Vessel) merge(m ais.Message, now time.Time) bool {
	switch r := m.(type) {
	case *ais.PositionReport:
		v.Class = ClassA
		v.setPosition(r.Position(), now)
		v.SOG, v.COG, v.Heading, v.NavStatus = r.SOG, r.COG, r.Heading, r.NavStatus
	case *ais.BaseStationReport:
		v.Class = ClassBase
		v.setPosition(r.Position(), now)
	case *ais.StaticVoyageData:
		v.Class = ClassA
		v.Name, v.CallSign, v.IMO, v.ShipType = r.Name, r.CallSign, r.IMO, r.ShipType
		v.Dimensions = r.Dimensions
		v.Destination, v.Draught = r.Destination, r.Draught
		if r.ETA.Available() {
			eta := r.ETA
			v.ETA = &eta
		}
	case *ais.SARAircraftReport:
		v.Class = ClassAircraft
		v.setPosition(r.Position(), now)
		v.SOG, v.COG = r.SOG, r.COG
	case *ais.ClassBPositionReport:
		v.Class = ClassB
		v.setPosition(r.Position(), now)
		v.SOG, v.COG, v.Heading = r.SOG, r.COG, r.Heading
	case *ais.ExtendedClassBReport:
		v.Class = ClassB
		v.setPosition(r.Position(), now)
		v.SOG, v.COG, v.Heading = r.SOG, r.COG, r.Heading
		v.Name, v.ShipType, v.Dimensions = r.Name, r.ShipType, r.Dimensions
	case *ais.AidToNavigationReport:
		v.Class = ClassAtoN
		v.setPosition(r.Position(), now)
		v.Name, v.ShipType, v.Dimensions = r.VesselName(), r.AidType, r.Dimensions
	case *ais.StaticDataReport:
		if v.Class == "" {
			v.Class = ClassB
		}
		if r.Part == ais.PartA {
			v.Name = r.Name
			break
		}
		v.ShipType, v.CallSign, v.Dimensions = r.ShipType, r.CallSign, r.Dimensions
	case *ais.LongRangeReport:
		v.setPosition(r.Position(), now)
		v.NavStatus = r.NavStatus
	default:
		return false
	}
	return true
}

func (v *Vessel) setPosition(p position.Point, now time.Time) {
	if !p.Available() {
		return
	}
	v.Position = p
	v.PositionAt = now
}
