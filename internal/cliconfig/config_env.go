package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "AISPARSER_"

// ApplyEnvConfig applies configuration from environment variables (AISPARSER_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	s.setString("input", env("INPUT"), &cfg.Input)
	s.setString("serial", env("SERIAL"), &cfg.Serial)
	s.setString("state-dir", env("STATE_DIR"), &cfg.StateDir)
	s.setString("format", env("FORMAT"), &cfg.Format)
	s.setString("output", env("OUTPUT"), &cfg.Output)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", env("LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setDuration("poll", env("POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("checkpoint-interval", env("CHECKPOINT_INTERVAL"), &cfg.CheckpointInterval); err != nil {
		return err
	}
	if err := s.setDuration("fragment-max-age", env("FRAGMENT_MAX_AGE"), &cfg.FragmentMaxAge); err != nil {
		return err
	}
	if err := s.setDuration("vessel-max-age", env("VESSEL_MAX_AGE"), &cfg.VesselMaxAge); err != nil {
		return err
	}
	if err := s.setDuration("sweep-interval", env("SWEEP_INTERVAL"), &cfg.SweepInterval); err != nil {
		return err
	}

	if err := s.setIntFromString("baud", env("BAUD"), &cfg.Baud); err != nil {
		return err
	}
	if err := s.setIntFromString("checkpoint-lines", env("CHECKPOINT_LINES"), &cfg.CheckpointLines); err != nil {
		return err
	}
	if err := s.setIntFromString("vessel-max-entries", env("VESSEL_MAX_ENTRIES"), &cfg.VesselMaxEntries); err != nil {
		return err
	}

	s.setBoolFromString("follow", env("FOLLOW"), &cfg.Follow)
	s.setBoolFromString("once", env("ONCE"), &cfg.Once)
	s.setBoolFromString("keep-sentence", env("KEEP_SENTENCE"), &cfg.KeepSentence)
	s.setBoolFromString("require-checksum", env("REQUIRE_CHECKSUM"), &cfg.RequireChecksum)
	s.setBoolFromString("ignore-checksum", env("IGNORE_CHECKSUM"), &cfg.IgnoreChecksum)
	s.setBoolFromString("watch-config", env("WATCH_CONFIG"), &cfg.WatchConfig)

	return nil
}
