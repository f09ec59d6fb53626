// Package sixbit unpacks the six-bit ASCII armoring used by AIS payloads
// into a packed bit buffer and reads fixed-width fields from it.
//
// Each armored character carries six bits, most significant first:
//
//	p, err := sixbit.Decode("35Mj3MPOj@o?FVFK<5w3r3@L00di", 0)
//	msgType, _ := p.Uint(0, 6) // 3
//	mmsi, _ := p.Uint(8, 30)   // 366773110
//
// Reads that extend past Len fail with a *BitRangeError; they never
// return partial values.
package sixbit
