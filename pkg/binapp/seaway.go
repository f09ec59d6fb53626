package binapp

import (
	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// St. Lawrence Seaway and PAWSS applications are carried under both the
// Canadian and the United States area codes.
var seawayDACs = []uint16{DACUnitedStates, DACCanada}

// Report sizes in bits.
const (
	seawayWeatherBits  = 192
	seawayReportBits   = 144
	seawayScheduleBits = 120
	pawssVesselBits    = 190
)

func init() {
	Register(seawayDACs, 1, 1, decodeSeawayWeather)
	Register(seawayDACs, 1, 2, decodeSeawayWind)
	Register(seawayDACs, 1, 3, decodeSeawayWaterLevel)
	Register(seawayDACs, 1, 6, decodeSeawayWaterFlow)
	Register(seawayDACs, 2, 1, decodeSeawayLockOrder)
	Register(seawayDACs, 2, 2, decodeSeawayLockTimes)
	Register(seawayDACs, 32, 1, decodeSeawayVersion)
}

// Station identifies the reporting station of a Seaway or PAWSS report.
type Station struct {
	Time     Timetag        `json:"time" yaml:"time"`
	ID       string         `json:"station_id" yaml:"station_id"`
	Position position.Point `json:"position" yaml:"position"`
}

func readStation(c *sixbit.Cursor) Station {
	return Station{
		Time:     readTimetag(c),
		ID:       c.Text(7),
		Position: readPoint(c, true),
	}
}

// SeawayWeather is a set of up to four meteorological station reports.
type SeawayWeather struct {
	Reports []WeatherReport `json:"reports" yaml:"reports"`
}

// WeatherReport is one station of a SeawayWeather message.
// Temperatures are signed tenths of a degree Celsius.
type WeatherReport struct {
	Station    `yaml:",inline"`
	Speed      uint16 `json:"speed" yaml:"speed"`
	Gust       uint16 `json:"gust" yaml:"gust"`
	Direction  uint16 `json:"direction" yaml:"direction"`
	Pressure   uint16 `json:"pressure" yaml:"pressure"`
	AirTemp    int16  `json:"air_temp" yaml:"air_temp"`
	DewPoint   int16  `json:"dew_point" yaml:"dew_point"`
	Visibility uint8  `json:"visibility" yaml:"visibility"`
	WaterTemp  int16  `json:"water_temp" yaml:"water_temp"`
}

func (*SeawayWeather) Name() string { return "seaway.weather" }

func decodeSeawayWeather(c *sixbit.Cursor) Application {
	return &SeawayWeather{Reports: repeated(c, seawayWeatherBits, 4, func(c *sixbit.Cursor) WeatherReport {
		return WeatherReport{
			Station:    readStation(c),
			Speed:      uint16(c.Uint(10)),
			Gust:       uint16(c.Uint(10)),
			Direction:  uint16(c.Uint(9)),
			Pressure:   uint16(c.Uint(14)),
			AirTemp:    int16(c.Int(10)),
			DewPoint:   int16(c.Int(10)),
			Visibility: uint8(c.Uint(8)),
			WaterTemp:  int16(c.Int(10)),
		}
	})}
}

// SeawayWind holds up to six wind reports.
type SeawayWind struct {
	Reports []WindReport `json:"reports" yaml:"reports"`
}

// WindReport is one station of a SeawayWind message.
type WindReport struct {
	Station   `yaml:",inline"`
	Speed     uint16 `json:"speed" yaml:"speed"`
	Gust      uint16 `json:"gust" yaml:"gust"`
	Direction uint16 `json:"direction" yaml:"direction"`
}

func (*SeawayWind) Name() string { return "seaway.wind" }

func decodeSeawayWind(c *sixbit.Cursor) Application {
	return &SeawayWind{Reports: repeated(c, seawayReportBits, 6, func(c *sixbit.Cursor) WindReport {
		r := WindReport{
			Station:   readStation(c),
			Speed:     uint16(c.Uint(10)),
			Gust:      uint16(c.Uint(10)),
			Direction: uint16(c.Uint(9)),
		}
		c.Skip(4)
		return r
	})}
}

// SeawayWaterLevel holds up to six water level reports.
type SeawayWaterLevel struct {
	Reports []WaterLevelReport `json:"reports" yaml:"reports"`
}

// WaterLevelReport is one gauge of a SeawayWaterLevel message.
// Level is in centimeters relative to Datum.
type WaterLevelReport struct {
	Station `yaml:",inline"`
	Type    uint8  `json:"type" yaml:"type"`
	Level   int16  `json:"level" yaml:"level"`
	Datum   uint8  `json:"datum" yaml:"datum"`
	Spare   uint16 `json:"spare" yaml:"spare"`
}

func (*SeawayWaterLevel) Name() string { return "seaway.water_level" }

func decodeSeawayWaterLevel(c *sixbit.Cursor) Application {
	return &SeawayWaterLevel{Reports: repeated(c, seawayReportBits, 6, func(c *sixbit.Cursor) WaterLevelReport {
		return WaterLevelReport{
			Station: readStation(c),
			Type:    uint8(c.Uint(1)),
			Level:   int16(c.Int(16)),
			Datum:   uint8(c.Uint(2)),
			Spare:   uint16(c.Uint(14)),
		}
	})}
}

// SeawayWaterFlow holds up to six flow reports.
type SeawayWaterFlow struct {
	Reports []WaterFlowReport `json:"reports" yaml:"reports"`
}

// WaterFlowReport is one station of a SeawayWaterFlow message.
type WaterFlowReport struct {
	Station `yaml:",inline"`
	Flow    uint16 `json:"flow" yaml:"flow"`
}

func (*SeawayWaterFlow) Name() string { return "seaway.water_flow" }

func decodeSeawayWaterFlow(c *sixbit.Cursor) Application {
	return &SeawayWaterFlow{Reports: repeated(c, seawayReportBits, 6, func(c *sixbit.Cursor) WaterFlowReport {
		r := WaterFlowReport{Station: readStation(c), Flow: uint16(c.Uint(14))}
		c.Skip(19)
		return r
	})}
}

// SeawayLockOrder is the lockage order of a lock with up to six vessels.
type SeawayLockOrder struct {
	Time      Timetag        `json:"time" yaml:"time"`
	LockID    string         `json:"lock_id" yaml:"lock_id"`
	Position  position.Point `json:"position" yaml:"position"`
	Schedules []LockSchedule `json:"schedules" yaml:"schedules"`
}

// LockSchedule is one vessel in a lockage order. Direction 0 is upbound.
type LockSchedule struct {
	Name      string  `json:"name" yaml:"name"`
	Direction uint8   `json:"direction" yaml:"direction"`
	ETA       Timetag `json:"eta" yaml:"eta"`
}

func (*SeawayLockOrder) Name() string { return "seaway.lock_order" }

func decodeSeawayLockOrder(c *sixbit.Cursor) Application {
	m := &SeawayLockOrder{
		Time:     readTimetag(c),
		LockID:   c.Text(7),
		Position: readPoint(c, true),
	}
	c.Skip(9)
	m.Schedules = repeated(c, seawayScheduleBits, 6, func(c *sixbit.Cursor) LockSchedule {
		s := LockSchedule{
			Name:      c.Text(15),
			Direction: uint8(c.Uint(1)),
			ETA:       readTimetag(c),
		}
		c.Skip(9)
		return s
	})
	return m
}

// SeawayLockTimes is the estimated lock arrival times of one vessel.
type SeawayLockTimes struct {
	Time         Timetag `json:"time" yaml:"time"`
	Vessel       string  `json:"vessel" yaml:"vessel"`
	LastLocation string  `json:"last_location" yaml:"last_location"`
	LastATA      Timetag `json:"last_ata" yaml:"last_ata"`
	FirstLock    string  `json:"first_lock" yaml:"first_lock"`
	FirstETA     Timetag `json:"first_eta" yaml:"first_eta"`
	SecondLock   string  `json:"second_lock" yaml:"second_lock"`
	SecondETA    Timetag `json:"second_eta" yaml:"second_eta"`
	Delay        string  `json:"delay" yaml:"delay"`
}

func (*SeawayLockTimes) Name() string { return "seaway.lock_times" }

func decodeSeawayLockTimes(c *sixbit.Cursor) Application {
	m := &SeawayLockTimes{
		Time:         readTimetag(c),
		Vessel:       c.Text(15),
		LastLocation: c.Text(7),
		LastATA:      readTimetag(c),
		FirstLock:    c.Text(7),
		FirstETA:     readTimetag(c),
		SecondLock:   c.Text(7),
		SecondETA:    readTimetag(c),
		Delay:        c.Text(7),
	}
	c.Skip(4)
	return m
}

// SeawayVersion announces the version of the Seaway message set.
type SeawayVersion struct {
	Major uint8 `json:"major" yaml:"major"`
	Minor uint8 `json:"minor" yaml:"minor"`
}

func (*SeawayVersion) Name() string { return "seaway.version" }

func decodeSeawayVersion(c *sixbit.Cursor) Application {
	m := &SeawayVersion{Major: uint8(c.Uint(8)), Minor: uint8(c.Uint(8))}
	c.Skip(8)
	return m
}
