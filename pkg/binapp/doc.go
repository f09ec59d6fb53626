// Package binapp decodes the application data of AIS binary messages
// (types 6, 8, 25 and 26), addressed by Designated Area Code (DAC) and
// Function Identifier (FI).
//
// Supported families:
//
//   - St. Lawrence Seaway (DAC 366 and 316): weather, wind, water level,
//     water flow, lockage order, estimated lock times, version
//   - PAWSS (DAC 366 and 316): current, salinity, procession order
//   - IMO (DAC 1): met/hydro, dangerous cargo, fairway closed, tidal
//     window, air draught, persons on board, VTS targets
//
// Seaway and PAWSS bodies start with two spare bits and a six-bit
// sub-message id. Decode never fails: combinations without a decoder come
// back as *Unknown with the raw bits attached.
package binapp
