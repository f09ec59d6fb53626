package cliconfig

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/multierr"

	"github.com/bft-labs/aisparser/internal/adapters/output"
	"github.com/bft-labs/aisparser/pkg/decoder"
	"github.com/bft-labs/aisparser/pkg/log"
	"github.com/bft-labs/aisparser/pkg/receiver"
)

// Config holds CLI configuration for aisparser.
type Config struct {
	Input  string
	Serial string
	Baud   int
	Follow bool
	Once   bool

	PollInterval       time.Duration
	StateDir           string
	CheckpointLines    int
	CheckpointInterval time.Duration

	Format       string
	Output       string
	KeepSentence bool

	RequireChecksum bool
	IgnoreChecksum  bool
	FragmentMaxAge  time.Duration

	VesselMaxAge     time.Duration
	VesselMaxEntries int
	SweepInterval    time.Duration

	LogLevel    string
	LogFormat   string
	WatchConfig bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Input:              "-",
		Baud:               receiver.DefaultBaud,
		PollInterval:       receiver.DefaultPollInterval,
		CheckpointLines:    receiver.DefaultCheckpointLines,
		CheckpointInterval: receiver.DefaultCheckpointInterval,
		Format:             output.FormatJSON,
		FragmentMaxAge:     receiver.DefaultFragmentMaxAge,
		VesselMaxAge:       receiver.DefaultVesselMaxAge,
		VesselMaxEntries:   receiver.DefaultVesselMaxEntries,
		SweepInterval:      time.Minute,
		LogLevel:           "info",
		LogFormat:          log.FormatConsole,
	}
}

// Validate checks the configuration and reports every problem at once.
// A serial device replaces the default stdin input.
func (c *Config) Validate() error {
	if c.Serial != "" && c.Input == "-" {
		c.Input = ""
	}

	var err error
	if c.Input == "" && c.Serial == "" {
		err = multierr.Append(err, errors.New("input or serial is required"))
	}
	if c.Input != "" && c.Serial != "" {
		err = multierr.Append(err, errors.New("input and serial are mutually exclusive"))
	}
	if c.RequireChecksum && c.IgnoreChecksum {
		err = multierr.Append(err, errors.New("require-checksum and ignore-checksum are mutually exclusive"))
	}
	switch c.Format {
	case output.FormatJSON, output.FormatYAML:
	default:
		err = multierr.Append(err, fmt.Errorf("format must be %q or %q, got %q", output.FormatJSON, output.FormatYAML, c.Format))
	}
	switch c.LogFormat {
	case log.FormatConsole, log.FormatJSON:
	default:
		err = multierr.Append(err, fmt.Errorf("log format must be %q or %q, got %q", log.FormatConsole, log.FormatJSON, c.LogFormat))
	}
	if c.PollInterval <= 0 {
		err = multierr.Append(err, errors.New("poll interval must be positive"))
	}
	if c.SweepInterval <= 0 {
		err = multierr.Append(err, errors.New("sweep interval must be positive"))
	}
	return err
}

// ChecksumPolicy maps the checksum flags to a decoder policy.
func (c Config) ChecksumPolicy() decoder.ChecksumPolicy {
	switch {
	case c.RequireChecksum:
		return decoder.ChecksumRequire
	case c.IgnoreChecksum:
		return decoder.ChecksumIgnore
	default:
		return decoder.ChecksumVerify
	}
}

// ReceiverConfig converts the CLI configuration for the receiver library.
func (c Config) ReceiverConfig() receiver.Config {
	return receiver.Config{
		Input:              c.Input,
		Serial:             c.Serial,
		Baud:               c.Baud,
		Follow:             c.Follow,
		PollInterval:       c.PollInterval,
		Once:               c.Once,
		StateDir:           c.StateDir,
		CheckpointLines:    c.CheckpointLines,
		CheckpointInterval: c.CheckpointInterval,
		Checksum:           c.ChecksumPolicy(),
		FragmentMaxAge:     c.FragmentMaxAge,
		VesselMaxAge:       c.VesselMaxAge,
		VesselMaxEntries:   c.VesselMaxEntries,
		KeepSentence:       c.KeepSentence,
	}
}

// configSetter applies values only for flags not set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if positive.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
