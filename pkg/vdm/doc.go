// Package vdm reassembles multi-fragment AIVDM/AIVDO transmissions.
//
// A group is accepted only when its fragments arrive in order with the
// same sequential message id, channel and fragment count. A first fragment
// always starts a new group; a group it interrupts is reported through the
// optional DropHandler rather than as an error. Any other break in the
// sequence resets the assembler and returns ErrReassemblyDesync.
package vdm
