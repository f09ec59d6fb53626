// Package ais extracts typed records from unpacked AIS message payloads.
//
// Decode reads the 6-bit message type and runs the layout registered for
// it. Every record embeds Header and implements Message; records that
// carry a position implement Positioned, and records that carry a name
// implement Named. Latitudes and longitudes are stored in 1/10000 minute
// regardless of their wire resolution, see package position.
//
// Binary messages (types 6 and 8) hand their application data to package
// binapp and keep the raw bits alongside the decoded application.
package ais
