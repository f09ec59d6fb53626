// Package domain contains the core error vocabulary and value objects for aisparser.
//
// This package represents the innermost layer of the module. It has no
// dependencies on infrastructure concerns (files, serial devices, logging)
// and every public package re-exports the errors defined here, so callers
// can match them with errors.Is regardless of which layer produced them.
//
// # Entities
//
//   - [State]: persistent read position of a file input for resume after restart
//   - [ChecksumError], [DesyncError], [BitRangeError], [CharacterError],
//     [UnsupportedTypeError]: typed errors carrying the failing values
package domain
