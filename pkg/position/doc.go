// Package position converts AIS coordinates between the raw transmitted
// unit (1/10000 minute of arc) and decimal degrees or degrees and minutes.
//
// Latitude 91° and longitude 181° mean "not available" and are reported as
// such rather than as out-of-range values.
package position
