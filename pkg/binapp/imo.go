package binapp

import (
	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

var imoDACs = []uint16{DACInternational}

const (
	tidalWindowBits = 93
	vtsTargetBits   = 120
)

func init() {
	Register(imoDACs, 11, -1, decodeMetHydro)
	Register(imoDACs, 12, -1, decodeDangerousCargo)
	Register(imoDACs, 13, -1, decodeFairwayClosed)
	Register(imoDACs, 14, -1, decodeTidalWindow)
	Register(imoDACs, 15, -1, decodeExtendedShipStatic)
	Register(imoDACs, 16, -1, decodePersonsOnBoard)
	Register(imoDACs, 17, -1, decodeVTSTargets)
}

// MetHydro is the IMO meteorological and hydrological data message.
// Values use the transmitted units; "not available" codes are kept as sent.
type MetHydro struct {
	Position     position.Point `json:"position" yaml:"position"`
	Day          uint8          `json:"day" yaml:"day"`
	Hour         uint8          `json:"hour" yaml:"hour"`
	Minute       uint8          `json:"minute" yaml:"minute"`
	WindAverage  uint8          `json:"wind_avg" yaml:"wind_avg"`
	WindGust     uint8          `json:"wind_gust" yaml:"wind_gust"`
	WindDir      uint16         `json:"wind_dir" yaml:"wind_dir"`
	GustDir      uint16         `json:"gust_dir" yaml:"gust_dir"`
	AirTemp      int16          `json:"air_temp" yaml:"air_temp"`
	Humidity     uint8          `json:"humidity" yaml:"humidity"`
	DewPoint     int16          `json:"dew_point" yaml:"dew_point"`
	Pressure     uint16         `json:"pressure" yaml:"pressure"`
	Tendency     uint8          `json:"tendency" yaml:"tendency"`
	Visibility   uint8          `json:"visibility" yaml:"visibility"`
	WaterLevel   int16          `json:"water_level" yaml:"water_level"`
	WaterTrend   uint8          `json:"water_trend" yaml:"water_trend"`
	SurfaceSpeed uint8          `json:"surface_speed" yaml:"surface_speed"`
	SurfaceDir   uint16         `json:"surface_dir" yaml:"surface_dir"`
	Currents     [2]Current     `json:"currents" yaml:"currents"`
	WaveHeight   uint8          `json:"wave_height" yaml:"wave_height"`
	WavePeriod   uint8          `json:"wave_period" yaml:"wave_period"`
	WaveDir      uint16         `json:"wave_dir" yaml:"wave_dir"`
	SwellHeight  uint8          `json:"swell_height" yaml:"swell_height"`
	SwellPeriod  uint8          `json:"swell_period" yaml:"swell_period"`
	SwellDir     uint16         `json:"swell_dir" yaml:"swell_dir"`
	SeaState     uint8          `json:"sea_state" yaml:"sea_state"`
	WaterTemp    int16          `json:"water_temp" yaml:"water_temp"`
	Precip       uint8          `json:"precip" yaml:"precip"`
	Salinity     uint16         `json:"salinity" yaml:"salinity"`
	Ice          uint8          `json:"ice" yaml:"ice"`
}

// Current is a subsurface current measurement at a given depth.
type Current struct {
	Speed     uint8  `json:"speed" yaml:"speed"`
	Direction uint16 `json:"direction" yaml:"direction"`
	Level     uint8  `json:"level" yaml:"level"`
}

func (*MetHydro) Name() string { return "imo.met_hydro" }

func decodeMetHydro(c *sixbit.Cursor) Application {
	m := &MetHydro{
		Position:     readPoint(c, false),
		Day:          uint8(c.Uint(5)),
		Hour:         uint8(c.Uint(5)),
		Minute:       uint8(c.Uint(6)),
		WindAverage:  uint8(c.Uint(7)),
		WindGust:     uint8(c.Uint(7)),
		WindDir:      uint16(c.Uint(9)),
		GustDir:      uint16(c.Uint(9)),
		AirTemp:      int16(c.Int(11)),
		Humidity:     uint8(c.Uint(7)),
		DewPoint:     int16(c.Int(10)),
		Pressure:     uint16(c.Uint(9)),
		Tendency:     uint8(c.Uint(2)),
		Visibility:   uint8(c.Uint(8)),
		WaterLevel:   int16(c.Int(9)),
		WaterTrend:   uint8(c.Uint(2)),
		SurfaceSpeed: uint8(c.Uint(8)),
		SurfaceDir:   uint16(c.Uint(9)),
	}
	for i := range m.Currents {
		m.Currents[i] = Current{
			Speed:     uint8(c.Uint(8)),
			Direction: uint16(c.Uint(9)),
			Level:     uint8(c.Uint(5)),
		}
	}
	m.WaveHeight = uint8(c.Uint(8))
	m.WavePeriod = uint8(c.Uint(6))
	m.WaveDir = uint16(c.Uint(9))
	m.SwellHeight = uint8(c.Uint(8))
	m.SwellPeriod = uint8(c.Uint(6))
	m.SwellDir = uint16(c.Uint(9))
	m.SeaState = uint8(c.Uint(4))
	m.WaterTemp = int16(c.Int(10))
	m.Precip = uint8(c.Uint(3))
	m.Salinity = uint16(c.Uint(9))
	m.Ice = uint8(c.Uint(2))
	c.Skip(6)
	return m
}

// DangerousCargo is the IMO dangerous cargo indication.
type DangerousCargo struct {
	LastPort string  `json:"last_port" yaml:"last_port"`
	ATD      Timetag `json:"atd" yaml:"atd"`
	NextPort string  `json:"next_port" yaml:"next_port"`
	ETA      Timetag `json:"eta" yaml:"eta"`
	Goods    string  `json:"goods" yaml:"goods"`
	IMDClass string  `json:"imd_class" yaml:"imd_class"`
	UNNumber uint16  `json:"un_number" yaml:"un_number"`
	Quantity uint16  `json:"quantity" yaml:"quantity"`
	Units    uint8   `json:"units" yaml:"units"`
}

func (*DangerousCargo) Name() string { return "imo.dangerous_cargo" }

func decodeDangerousCargo(c *sixbit.Cursor) Application {
	m := &DangerousCargo{
		LastPort: c.Text(5),
		ATD:      readTimetag(c),
		NextPort: c.Text(5),
		ETA:      readTimetag(c),
		Goods:    c.Text(20),
		IMDClass: c.Text(4),
		UNNumber: uint16(c.Uint(13)),
		Quantity: uint16(c.Uint(10)),
		Units:    uint8(c.Uint(2)),
	}
	c.Skip(3)
	return m
}

// FairwayClosed announces a closed section of a fairway.
type FairwayClosed struct {
	Reason    string   `json:"reason" yaml:"reason"`
	From      string   `json:"from" yaml:"from"`
	To        string   `json:"to" yaml:"to"`
	Extension uint16   `json:"extension" yaml:"extension"`
	Units     uint8    `json:"units" yaml:"units"`
	Start     DayStamp `json:"start" yaml:"start"`
	End       DayStamp `json:"end" yaml:"end"`
}

// DayStamp is a day/month/hour/minute time in the order IMO messages send it.
type DayStamp struct {
	Day    uint8 `json:"day" yaml:"day"`
	Month  uint8 `json:"month" yaml:"month"`
	Hour   uint8 `json:"hour" yaml:"hour"`
	Minute uint8 `json:"minute" yaml:"minute"`
}

func readDayStamp(c *sixbit.Cursor) DayStamp {
	return DayStamp{
		Day:    uint8(c.Uint(5)),
		Month:  uint8(c.Uint(4)),
		Hour:   uint8(c.Uint(5)),
		Minute: uint8(c.Uint(6)),
	}
}

func (*FairwayClosed) Name() string { return "imo.fairway_closed" }

func decodeFairwayClosed(c *sixbit.Cursor) Application {
	m := &FairwayClosed{
		Reason:    c.Text(20),
		From:      c.Text(20),
		To:        c.Text(20),
		Extension: uint16(c.Uint(10)),
		Units:     uint8(c.Uint(2)),
		Start:     readDayStamp(c),
		End:       readDayStamp(c),
	}
	c.Skip(4)
	return m
}

// TidalWindow lists up to three windows of passable tide at given points.
type TidalWindow struct {
	Month   uint8    `json:"month" yaml:"month"`
	Day     uint8    `json:"day" yaml:"day"`
	Windows []Window `json:"windows" yaml:"windows"`
}

// Window is one tidal window. Position is in 1/10000 minute as sent.
type Window struct {
	Position     position.Point `json:"position" yaml:"position"`
	FromHour     uint8          `json:"from_hour" yaml:"from_hour"`
	FromMinute   uint8          `json:"from_minute" yaml:"from_minute"`
	ToHour       uint8          `json:"to_hour" yaml:"to_hour"`
	ToMinute     uint8          `json:"to_minute" yaml:"to_minute"`
	CurrentDir   uint16         `json:"current_dir" yaml:"current_dir"`
	CurrentSpeed uint8          `json:"current_speed" yaml:"current_speed"`
}

func (*TidalWindow) Name() string { return "imo.tidal_window" }

func decodeTidalWindow(c *sixbit.Cursor) Application {
	m := &TidalWindow{Month: uint8(c.Uint(4)), Day: uint8(c.Uint(5))}
	m.Windows = repeated(c, tidalWindowBits, 3, func(c *sixbit.Cursor) Window {
		var w Window
		w.Position.Lat = c.Int(27)
		w.Position.Lon = c.Int(28)
		w.FromHour = uint8(c.Uint(5))
		w.FromMinute = uint8(c.Uint(6))
		w.ToHour = uint8(c.Uint(5))
		w.ToMinute = uint8(c.Uint(6))
		w.CurrentDir = uint16(c.Uint(9))
		w.CurrentSpeed = uint8(c.Uint(7))
		return w
	})
	return m
}

// ExtendedShipStatic carries the air draught in decimeters.
type ExtendedShipStatic struct {
	AirDraught uint16 `json:"air_draught" yaml:"air_draught"`
}

func (*ExtendedShipStatic) Name() string { return "imo.extended_ship_static" }

func decodeExtendedShipStatic(c *sixbit.Cursor) Application {
	m := &ExtendedShipStatic{AirDraught: uint16(c.Uint(11))}
	c.Skip(5)
	return m
}

// PersonsOnBoard carries the number of persons on board; 0 is unknown.
type PersonsOnBoard struct {
	Persons uint16 `json:"persons" yaml:"persons"`
}

func (*PersonsOnBoard) Name() string { return "imo.persons_on_board" }

func decodePersonsOnBoard(c *sixbit.Cursor) Application {
	m := &PersonsOnBoard{Persons: uint16(c.Uint(13))}
	c.Skip(3)
	return m
}

// VTS target identifier kinds.
const (
	TargetMMSI     uint8 = 0
	TargetIMO      uint8 = 1
	TargetCallSign uint8 = 2
	TargetOther    uint8 = 3
)

// VTSTargets lists up to four targets tracked by a VTS station.
type VTSTargets struct {
	Targets []VTSTarget `json:"targets" yaml:"targets"`
}

// VTSTarget is one tracked target. Exactly one identifier field is set,
// selected by IDType.
type VTSTarget struct {
	IDType    uint8          `json:"id_type" yaml:"id_type"`
	MMSI      uint32         `json:"mmsi,omitempty" yaml:"mmsi,omitempty"`
	IMO       uint32         `json:"imo,omitempty" yaml:"imo,omitempty"`
	CallSign  string         `json:"callsign,omitempty" yaml:"callsign,omitempty"`
	Other     string         `json:"other,omitempty" yaml:"other,omitempty"`
	Position  position.Point `json:"position" yaml:"position"`
	COG       uint16         `json:"cog" yaml:"cog"`
	Timestamp uint8          `json:"timestamp" yaml:"timestamp"`
	SOG       uint8          `json:"sog" yaml:"sog"`
}

func (*VTSTargets) Name() string { return "imo.vts_targets" }

func decodeVTSTargets(c *sixbit.Cursor) Application {
	return &VTSTargets{Targets: repeated(c, vtsTargetBits, 4, func(c *sixbit.Cursor) VTSTarget {
		t := VTSTarget{IDType: uint8(c.Uint(2))}
		switch t.IDType {
		case TargetMMSI:
			c.Skip(12)
			t.MMSI = c.Uint(30)
		case TargetIMO:
			c.Skip(12)
			t.IMO = c.Uint(30)
		case TargetCallSign:
			t.CallSign = c.Text(7)
		default:
			t.Other = c.Text(7)
		}
		c.Skip(4)
		t.Position = readPoint(c, false)
		t.COG = uint16(c.Uint(9))
		t.Timestamp = uint8(c.Uint(6))
		t.SOG = uint8(c.Uint(8))
		return t
	})}
}
