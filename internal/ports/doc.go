// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// # Port Interfaces
//
//   - [LineSource]: yields raw NMEA lines from a file, stdin or serial device
//   - [RecordSink]: receives decoded records (JSON lines, YAML)
//   - [StateRepository]: persists and loads the file read position
//   - [Logger]: structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// file system, serial and encoder implementations.
package ports
