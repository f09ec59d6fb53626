package cliconfig

import (
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Input              string `toml:"input"`
	Serial             string `toml:"serial"`
	Baud               int    `toml:"baud"`
	Follow             *bool  `toml:"follow"`
	Once               *bool  `toml:"once"`
	PollInterval       string `toml:"poll_interval"`
	StateDir           string `toml:"state_dir"`
	CheckpointLines    int    `toml:"checkpoint_lines"`
	CheckpointInterval string `toml:"checkpoint_interval"`
	Format             string `toml:"format"`
	Output             string `toml:"output"`
	KeepSentence       *bool  `toml:"keep_sentence"`
	RequireChecksum    *bool  `toml:"require_checksum"`
	IgnoreChecksum     *bool  `toml:"ignore_checksum"`
	FragmentMaxAge     string `toml:"fragment_max_age"`
	VesselMaxAge       string `toml:"vessel_max_age"`
	VesselMaxEntries   int    `toml:"vessel_max_entries"`
	SweepInterval      string `toml:"sweep_interval"`
	LogLevel           string `toml:"log_level"`
	LogFormat          string `toml:"log_format"`
	WatchConfig        *bool  `toml:"watch_config"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.aisparser/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".aisparser", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", fc.Input, &cfg.Input)
	s.setString("serial", fc.Serial, &cfg.Serial)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("format", fc.Format, &cfg.Format)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	durations := []struct {
		flag  string
		value string
		dst   *time.Duration
	}{
		{"poll", fc.PollInterval, &cfg.PollInterval},
		{"checkpoint-interval", fc.CheckpointInterval, &cfg.CheckpointInterval},
		{"fragment-max-age", fc.FragmentMaxAge, &cfg.FragmentMaxAge},
		{"vessel-max-age", fc.VesselMaxAge, &cfg.VesselMaxAge},
		{"sweep-interval", fc.SweepInterval, &cfg.SweepInterval},
	}
	for _, d := range durations {
		if err := s.setDuration(d.flag, d.value, d.dst); err != nil {
			return err
		}
	}

	s.setInt("baud", fc.Baud, &cfg.Baud)
	s.setInt("checkpoint-lines", fc.CheckpointLines, &cfg.CheckpointLines)
	s.setInt("vessel-max-entries", fc.VesselMaxEntries, &cfg.VesselMaxEntries)

	s.setBool("follow", fc.Follow, &cfg.Follow)
	s.setBool("once", fc.Once, &cfg.Once)
	s.setBool("keep-sentence", fc.KeepSentence, &cfg.KeepSentence)
	s.setBool("require-checksum", fc.RequireChecksum, &cfg.RequireChecksum)
	s.setBool("ignore-checksum", fc.IgnoreChecksum, &cfg.IgnoreChecksum)
	s.setBool("watch-config", fc.WatchConfig, &cfg.WatchConfig)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
