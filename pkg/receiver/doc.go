// Package receiver runs an AIS decode pipeline in the background.
//
// A Receiver reads NMEA lines from a file, stdin, a serial device or a
// custom [LineSource], decodes them with one [decoder.Decoder], folds the
// results into a [vessel.Cache] and writes a [Record] per message to a
// [Sink].
//
// # Basic Usage
//
//	cfg := receiver.Config{
//	    Input:    "/var/log/ais.nmea",
//	    Follow:   true,
//	    StateDir: "/var/lib/aisparser",
//	}
//
//	r, err := receiver.New(cfg, receiver.WithSink(sink))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := r.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Configuration
//
// Zero fields of [Config] take the defaults listed in config.go; see
// [Config.SetDefaults]. [Config.Validate] reports every problem at once.
//
// A file that is not followed, and stdin, are read until EOF, after which
// the receiver stops on its own and [Receiver.Done] is closed. With
// StateDir set, the byte offset of the last complete line of a file input
// is saved to aisparser.state.json and the next run resumes from it.
//
// # Event Handling
//
// Implement [EventHandler], embedding [BaseEventHandler] for the events you
// do not need, and pass it via [WithEventHandler]. Events are called
// synchronously from the pipeline goroutine and should return quickly.
//
// # Lifecycle States
//
// A Receiver is in one of [StateStopped], [StateStarting], [StateRunning],
// [StateStopping] or [StateCrashed]. A stopped or crashed receiver can be
// started again.
//
// # Plugins
//
// Plugins run alongside the pipeline and see the vessel cache:
//
//	r, err := receiver.New(cfg,
//	    cachesweep.WithCacheSweep(cachesweep.DefaultConfig()),
//	    configwatcher.WithConfigWatcher(configwatcher.Config{Path: path}),
//	)
package receiver
