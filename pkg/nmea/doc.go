// Package nmea verifies NMEA 0183 checksums and splits AIVDM/AIVDO
// sentences into their comma-separated fields.
//
// The checksum is the XOR of every byte between the start delimiter
// ('!' or '$') and the '*' that precedes two hexadecimal digits:
//
//	r, err := nmea.Verify("!AIVDM,1,1,,B,35Mj3MPOj@o?FVFK<5w3r3@L00di,0*0F")
//	// r.Match == true, r.Computed == 0x0F
//
// Parse does not reject bad checksums. The decoder package applies the
// configured policy.
package nmea
