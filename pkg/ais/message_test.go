package ais

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/aisparser/pkg/binapp"
	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

func decode(t *testing.T, payload string, fill int) Message {
	t.Helper()
	m, err := DecodeText(payload, fill)
	require.NoError(t, err)
	return m
}

func TestPositionReports(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    PositionReport
	}{
		{
			name:    "type 1 rot not available",
			payload: "15MgK45P3@G?fl0E`JbR0OwT0@MS",
			want: PositionReport{
				Header: Header{Type: 1, MMSI: 366730000}, NavStatus: 5, ROT: -128, SOG: 208,
				Lon: -73435520, Lat: 22682282, COG: 513, Heading: 511, Second: 50,
				SOTDMA: &SOTDMA{SyncState: 0, SlotTimeout: 4, SubMessage: 1891},
			},
		},
		{
			name:    "type 1 accurate",
			payload: "19NS7Sp02wo?HETKA2K6mUM20<L=",
			want: PositionReport{
				Header: Header{Type: 1, MMSI: 636012431}, NavStatus: 8, SOG: 191, Accuracy: true,
				Lon: -73481550, Lat: 28590700, COG: 1750, Heading: 174, Second: 33,
				SOTDMA: &SOTDMA{SlotTimeout: 3, SubMessage: 1805},
			},
		},
		{
			name:    "type 3 itdma",
			payload: "35Mj3MPOj@o?FVFK<5w3r3@L00di",
			want: PositionReport{
				Header: Header{Type: 3, MMSI: 366773110}, ROT: 127, SOG: 144, Accuracy: true,
				Lon: -73485109, Lat: 28509692, COG: 1000, Heading: 104, Second: 14,
				ITDMA: &ITDMA{SlotIncrement: 179, Keep: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := decode(t, tt.payload, 0)
			got, ok := m.(*PositionReport)
			require.True(t, ok, "got %T", m)
			assert.Equal(t, tt.want, *got)
			assert.Equal(t, tt.want.Header, m.GetHeader())
		})
	}
}

func TestPositionReportHelpers(t *testing.T) {
	m := decode(t, "35Mj3MPOj@o?FVFK<5w3r3@L00di", 0).(*PositionReport)

	lat, lon := m.Position().Decimal()
	assert.InDelta(t, 47.5161533, lat, 1e-6)
	assert.InDelta(t, -122.4751817, lon, 1e-6)

	sog, ok := m.Speed()
	require.True(t, ok)
	assert.InDelta(t, 14.4, sog, 1e-9)

	cog, ok := m.Course()
	require.True(t, ok)
	assert.InDelta(t, 100.0, cog, 1e-9)

	rot, ok := m.RateOfTurn()
	require.True(t, ok)
	assert.InDelta(t, 720.0, rot, 1.0)

	first := decode(t, "15MgK45P3@G?fl0E`JbR0OwT0@MS", 0).(*PositionReport)
	_, ok = first.RateOfTurn()
	assert.False(t, ok)
}

func TestPositionReportWithoutCommState(t *testing.T) {
	p, err := sixbit.Decode("35Mj3MPOj@o?FVFK<5w3r3@L00di", 0)
	require.NoError(t, err)
	short, err := p.Bits(0, 149)
	require.NoError(t, err)

	m, err := Decode(short)
	require.NoError(t, err)
	got := m.(*PositionReport)
	assert.Nil(t, got.SOTDMA)
	assert.Nil(t, got.ITDMA)
	assert.Equal(t, uint32(366773110), got.MMSI)
}

func TestBaseStationReport(t *testing.T) {
	m := decode(t, "403OviQuMGCqWrRO9>E6fE700@GO", 0)
	got, ok := m.(*BaseStationReport)
	require.True(t, ok, "got %T", m)

	assert.Equal(t, uint32(3669702), got.MMSI)
	assert.Equal(t, int32(-45811417), got.Lon)
	assert.Equal(t, int32(22130260), got.Lat)
	assert.Equal(t, uint8(7), got.EPFD)
	assert.Equal(t, &SOTDMA{SlotTimeout: 4, SubMessage: 1503}, got.SOTDMA)

	ts, ok := got.Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2007, 5, 14, 19, 57, 39, 0, time.UTC), ts)

	got.Hour = 24
	_, ok = got.Time()
	assert.False(t, ok)
}

func TestStaticVoyageData(t *testing.T) {
	m := decode(t, "55?MbV02;H;s<HtKR20EHE:0@T4@Dn2222222216L961O5Gf0NSQEp6ClRp888888888880", 2)
	got, ok := m.(*StaticVoyageData)
	require.True(t, ok, "got %T", m)

	assert.Equal(t, StaticVoyageData{
		Header:      Header{Type: 5, MMSI: 351759000},
		IMO:         9134270,
		CallSign:    "3FOF8",
		Name:        "EVER DIADEM",
		ShipType:    70,
		Dimensions:  Dimensions{Bow: 225, Stern: 70, Port: 1, Starboard: 31},
		EPFD:        1,
		ETA:         ETA{Month: 5, Day: 15, Hour: 14, Minute: 0},
		Draught:     122,
		Destination: "NEW YORK",
	}, *got)
	assert.Equal(t, 295, got.Dimensions.Length())
	assert.Equal(t, 32, got.Dimensions.Beam())
	assert.Equal(t, "EVER DIADEM", got.VesselName())
}

func TestClassBPositionReport(t *testing.T) {
	m := decode(t, "B52K>;h00Fc>jpUlNV@ikwpUoP06", 0)
	got, ok := m.(*ClassBPositionReport)
	require.True(t, ok, "got %T", m)

	assert.Equal(t, ClassBPositionReport{
		Header:    Header{Type: 18, MMSI: 338087471},
		SOG:       1,
		Lon:       -44443279,
		Lat:       24410724,
		COG:       796,
		Heading:   511,
		Second:    49,
		CSUnit:    true,
		DSC:       true,
		Band:      true,
		Msg22:     true,
		RAIM:      true,
		CommState: true,
		ITDMA:     &ITDMA{SyncState: 3, NumSlots: 3},
	}, *got)
	var _ Positioned = got
}

func TestSARAircraftReport(t *testing.T) {
	m := decode(t, "91b55wi;hbOS@OdQAC062Ch2089h", 0)
	got, ok := m.(*SARAircraftReport)
	require.True(t, ok, "got %T", m)

	assert.Equal(t, uint32(111232511), got.MMSI)
	assert.Equal(t, uint16(303), got.Altitude)
	assert.Equal(t, uint16(42), got.SOG)
	assert.Equal(t, position.Point{Lat: 34886400, Lon: -3767306}, got.Position())
	assert.Equal(t, uint16(1545), got.COG)
	assert.True(t, got.DTE)
	assert.Equal(t, &SOTDMA{SlotTimeout: 2, SubMessage: 624}, got.SOTDMA)
	assert.Nil(t, got.ITDMA)
}

func TestStaticDataReport(t *testing.T) {
	a := decode(t, "H42O55i18tMET00000000000000", 2).(*StaticDataReport)
	assert.Equal(t, PartA, a.Part)
	assert.Equal(t, uint32(271041815), a.MMSI)
	assert.Equal(t, "PROGUY", a.VesselName())

	b := decode(t, "H52KMeDU653hhhi0000000000000", 2).(*StaticDataReport)
	assert.Equal(t, PartB, b.Part)
	assert.Equal(t, uint32(338091445), b.MMSI)
	assert.Equal(t, uint8(37), b.ShipType)
	assert.Equal(t, "FEC0001", b.VendorID)
	assert.Empty(t, b.CallSign)
	assert.Empty(t, b.Name)

	var w sixbit.Writer
	w.PutUint(24, 6).PutUint(0, 2).PutUint(1, 30).PutUint(2, 2).PutUint(0, 126)
	_, err := Decode(w.Payload())
	assert.ErrorIs(t, err, ErrInvalidPart)
	assert.ErrorIs(t, err, ErrUnsupportedMessageType)
}

func TestLongRangeReport(t *testing.T) {
	m := decode(t, "KC5E2b@U19PFdLbL", 0)
	got, ok := m.(*LongRangeReport)
	require.True(t, ok, "got %T", m)

	assert.Equal(t, LongRangeReport{
		Header:    Header{Type: 27, Repeat: 1, MMSI: 206914217},
		NavStatus: 2,
		Lon:       82214000,
		Lat:       2904000,
		SOG:       57,
		COG:       167,
	}, *got)
}

func TestBroadcastBinaryWaterLevel(t *testing.T) {
	m := decode(t, "8030ojA?0@=DE3@?BDPA3onQiUFttP1Wh01DE3<1EJ?>0onlkUG0e01Ih00", 2)
	got, ok := m.(*BroadcastBinary)
	require.True(t, ok, "got %T", m)

	assert.Equal(t, uint32(3160009), got.MMSI)
	assert.Equal(t, binapp.DACCanada, got.DAC)
	assert.Equal(t, uint8(1), got.FI)
	assert.Equal(t, 352-56, got.Data.Len())

	wl, ok := got.Application.(*binapp.SeawayWaterLevel)
	require.True(t, ok, "got %T", got.Application)
	require.Len(t, wl.Reports, 2)
	assert.Equal(t, "PORT QC", wl.Reports[0].Station.ID)
	assert.Equal(t, int16(89), wl.Reports[1].Level)
}

func binaryMessage(msgType uint8, dac uint16, fi uint8, body func(*sixbit.Writer)) *sixbit.Payload {
	var w sixbit.Writer
	w.PutUint(uint32(msgType), 6).PutUint(0, 2).PutUint(987654321, 30)
	if msgType == 6 {
		w.PutUint(1, 2).PutUint(123456789, 30).PutBool(true).PutUint(0, 1)
	} else {
		w.PutUint(0, 2)
	}
	w.PutUint(uint32(dac)<<6|uint32(fi), 16)
	body(&w)
	return w.Payload()
}

func TestBinaryUnknownApplication(t *testing.T) {
	p := binaryMessage(8, 200, 10, func(w *sixbit.Writer) { w.PutUint(0xABCD, 16) })

	m, err := Decode(p)
	require.NoError(t, err)
	got := m.(*BroadcastBinary)
	u, ok := got.Application.(*binapp.Unknown)
	require.True(t, ok, "got %T", got.Application)
	assert.Equal(t, uint16(200), u.DAC)
	assert.Equal(t, uint8(10), u.FI)
	assert.Equal(t, 16, got.Data.Len())
}

func TestAddressedBinary(t *testing.T) {
	p := binaryMessage(6, 1, 14, func(w *sixbit.Writer) { w.PutUint(0, 32) })

	m, err := Decode(p)
	require.NoError(t, err)
	got, ok := m.(*AddressedBinary)
	require.True(t, ok, "got %T", m)
	assert.Equal(t, uint8(1), got.Sequence)
	assert.Equal(t, uint32(123456789), got.Dest)
	assert.True(t, got.Retransmit)
	assert.Equal(t, binapp.DACInternational, got.DAC)
	assert.Equal(t, uint8(14), got.FI)
	assert.NotNil(t, got.Application)
}

func TestAcknowledge(t *testing.T) {
	for n := 1; n <= 4; n++ {
		var w sixbit.Writer
		w.PutUint(7, 6).PutUint(0, 2).PutUint(1, 30).PutUint(0, 2)
		for i := 0; i < n; i++ {
			w.PutUint(uint32(100+i), 30).PutUint(uint32(i), 2)
		}
		m, err := Decode(w.Payload())
		require.NoError(t, err)
		got := m.(*Acknowledge)
		require.Len(t, got.Acks, n)
		assert.Equal(t, Ack{Dest: uint32(100 + n - 1), Sequence: uint8(n - 1)}, got.Acks[n-1])
	}
}

func TestSafetyText(t *testing.T) {
	var w sixbit.Writer
	w.PutUint(14, 6).PutUint(0, 2).PutUint(2, 30).PutUint(0, 2).PutText("SECURITE", 8)
	m, err := Decode(w.Payload())
	require.NoError(t, err)
	assert.Equal(t, "SECURITE", m.(*BroadcastSafety).Text)

	w = sixbit.Writer{}
	w.PutUint(12, 6).PutUint(0, 2).PutUint(2, 30).PutUint(3, 2).PutUint(3, 30).PutBool(false).PutUint(0, 1).PutText("HELLO@@", 7)
	m, err = Decode(w.Payload())
	require.NoError(t, err)
	got := m.(*AddressedSafety)
	assert.Equal(t, uint8(3), got.Sequence)
	assert.Equal(t, uint32(3), got.Dest)
	assert.Equal(t, "HELLO", got.Text)
}

func TestChannelManagement(t *testing.T) {
	head := func(w *sixbit.Writer) {
		w.PutUint(22, 6).PutUint(0, 2).PutUint(3, 30).PutUint(0, 2)
		w.PutUint(2087, 12).PutUint(2088, 12).PutUint(0, 4).PutBool(false)
	}

	t.Run("area", func(t *testing.T) {
		var w sixbit.Writer
		head(&w)
		w.PutInt(-1000, 18).PutInt(600, 17).PutInt(-1200, 18).PutInt(500, 17)
		w.PutBool(false).PutBool(false).PutBool(false).PutUint(4, 3).PutUint(0, 23)
		m, err := Decode(w.Payload())
		require.NoError(t, err)
		got := m.(*ChannelManagement)
		require.NotNil(t, got.Area)
		assert.Equal(t, position.Point{Lat: 600000, Lon: -1000000}, got.Area.NorthEast)
		assert.Equal(t, position.Point{Lat: 500000, Lon: -1200000}, got.Area.SouthWest)
		assert.Equal(t, uint8(4), got.ZoneSize)
	})

	t.Run("addressed", func(t *testing.T) {
		var w sixbit.Writer
		head(&w)
		w.PutUint(244123456, 30).PutUint(0, 5).PutUint(244654321, 30).PutUint(0, 5)
		w.PutBool(true).PutBool(false).PutBool(false).PutUint(0, 3).PutUint(0, 23)
		m, err := Decode(w.Payload())
		require.NoError(t, err)
		got := m.(*ChannelManagement)
		assert.Nil(t, got.Area)
		assert.Equal(t, uint32(244123456), got.Dest1)
		assert.Equal(t, uint32(244654321), got.Dest2)
	})
}

func TestManagementMessages(t *testing.T) {
	t.Run("interrogation three requests", func(t *testing.T) {
		var w sixbit.Writer
		w.PutUint(15, 6).PutUint(0, 2).PutUint(4, 30).PutUint(0, 2)
		w.PutUint(11, 30).PutUint(5, 6).PutUint(0, 12)
		w.PutUint(0, 2).PutUint(24, 6).PutUint(0, 12)
		w.PutUint(0, 2).PutUint(22, 30).PutUint(5, 6).PutUint(0, 12).PutUint(0, 2)
		m, err := Decode(w.Payload())
		require.NoError(t, err)
		assert.Equal(t, []Request{
			{Dest: 11, MessageType: 5},
			{Dest: 11, MessageType: 24},
			{Dest: 22, MessageType: 5},
		}, m.(*Interrogation).Requests)
	})

	t.Run("assignment one station", func(t *testing.T) {
		var w sixbit.Writer
		w.PutUint(16, 6).PutUint(0, 2).PutUint(4, 30).PutUint(0, 2)
		w.PutUint(77, 30).PutUint(10, 12).PutUint(600, 10)
		m, err := Decode(w.Payload())
		require.NoError(t, err)
		assert.Equal(t, []Assignment{{Dest: 77, Offset: 10, Increment: 600}}, m.(*AssignmentCommand).Assignments)
	})

	t.Run("data link two reservations", func(t *testing.T) {
		var w sixbit.Writer
		w.PutUint(20, 6).PutUint(0, 2).PutUint(4, 30).PutUint(0, 2)
		w.PutUint(100, 12).PutUint(1, 4).PutUint(7, 3).PutUint(750, 11)
		w.PutUint(200, 12).PutUint(2, 4).PutUint(3, 3).PutUint(375, 11)
		m, err := Decode(w.Payload())
		require.NoError(t, err)
		assert.Equal(t, []Reservation{
			{Offset: 100, Slots: 1, Timeout: 7, Increment: 750},
			{Offset: 200, Slots: 2, Timeout: 3, Increment: 375},
		}, m.(*DataLinkManagement).Reservations)
	})

	t.Run("dgnss without corrections", func(t *testing.T) {
		var w sixbit.Writer
		w.PutUint(17, 6).PutUint(0, 2).PutUint(4, 30).PutUint(0, 2)
		w.PutInt(-7000, 18).PutInt(2500, 17).PutUint(0, 5)
		m, err := Decode(w.Payload())
		require.NoError(t, err)
		got := m.(*DGNSSBroadcast)
		assert.Equal(t, position.Point{Lat: 2500000, Lon: -7000000}, got.Position())
		assert.Nil(t, got.Data)
	})
}

func TestDecodeErrors(t *testing.T) {
	t.Run("unsupported type", func(t *testing.T) {
		var w sixbit.Writer
		w.PutUint(30, 6).PutUint(0, 162)
		_, err := Decode(w.Payload())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedMessageType)
		var ute *UnsupportedTypeError
		require.True(t, errors.As(err, &ute))
		assert.Equal(t, uint8(30), ute.Type)
	})

	t.Run("short payload", func(t *testing.T) {
		_, err := DecodeText("15MgK45P3@G?fl0E`Jb", 0)
		assert.ErrorIs(t, err, ErrBitRangeExceeded)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := DecodeText("", 0)
		assert.ErrorIs(t, err, ErrBitRangeExceeded)
	})

	t.Run("short static voyage", func(t *testing.T) {
		_, err := DecodeText("55?MbV02;H;s<HtKR20EHE:0@T4@Dn2222222216L961O5Gf0NSQEp6ClRp8", 0)
		assert.ErrorIs(t, err, ErrBitRangeExceeded)
	})
}

func TestKinds(t *testing.T) {
	for _, typ := range []uint8{1, 2, 3, 4, 5, 6, 8, 18, 19, 24} {
		assert.True(t, Supported(typ), "type %d", typ)
	}
	assert.False(t, Supported(0))
	assert.False(t, Supported(28))
	assert.Equal(t, "static_voyage_data", KindOf(5))
	assert.Equal(t, "unknown", KindOf(63))
}

func TestRecordJSON(t *testing.T) {
	m := decode(t, "B52K>;h00Fc>jpUlNV@ikwpUoP06", 0)
	b, err := json.Marshal(m)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.EqualValues(t, 18, got["type"])
	assert.EqualValues(t, 338087471, got["mmsi"])
	assert.Contains(t, got, "itdma")
	assert.NotContains(t, got, "sotdma")
}
