// Package log is the structured logging interface used by the decoder,
// the receiver and its plugins.
//
// Components accept a Logger and default to NoopLogger. The zerolog
// adapter writes either human readable console lines or JSON:
//
//	logger := log.NewZerologAdapter(os.Stderr, log.FormatConsole)
//
// Field constructors cover the common AIS keys, so log lines from
// different components agree on names:
//
//	logger.Debug("message decoded", log.MMSI(m.MMSI), log.Uint8("type", m.Type))
package log
