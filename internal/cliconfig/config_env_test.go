package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"AISPARSER_INPUT":              "/var/log/ais.nmea",
				"AISPARSER_POLL_INTERVAL":      "2s",
				"AISPARSER_VESSEL_MAX_AGE":     "1h",
				"AISPARSER_VESSEL_MAX_ENTRIES": "500",
				"AISPARSER_FOLLOW":             "true",
				"AISPARSER_REQUIRE_CHECKSUM":   "1",
				"AISPARSER_FORMAT":             "yaml",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Input:            "/var/log/ais.nmea",
				PollInterval:     2 * time.Second,
				VesselMaxAge:     time.Hour,
				VesselMaxEntries: 500,
				Follow:           true,
				RequireChecksum:  true,
				Format:           "yaml",
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"AISPARSER_INPUT":  "/env/ais.nmea",
				"AISPARSER_SERIAL": "/dev/ttyUSB0",
			},
			changed:  map[string]bool{"input": true},
			initial:  Config{Input: "/cli/ais.nmea"},
			expected: Config{Input: "/cli/ais.nmea", Serial: "/dev/ttyUSB0"},
		},
		{
			name:     "non-positive int keeps previous value",
			envVars:  map[string]string{"AISPARSER_BAUD": "0"},
			changed:  map[string]bool{},
			initial:  Config{Baud: 4800},
			expected: Config{Baud: 4800},
		},
		{
			name:     "bool other than true or 1 is false",
			envVars:  map[string]string{"AISPARSER_ONCE": "yes"},
			changed:  map[string]bool{},
			initial:  Config{Once: true},
			expected: Config{},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"AISPARSER_FRAGMENT_MAX_AGE": "soon"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"AISPARSER_CHECKPOINT_LINES": "many"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Precedence order: CLI > Env > File.
func TestConfigPrecedence(t *testing.T) {
	trueVal := true
	fileConf := FileConfig{
		Input:        "/file/ais.nmea",
		StateDir:     "/file/state",
		VesselMaxAge: "10m",
		Follow:       &trueVal,
	}

	t.Setenv("AISPARSER_INPUT", "/env/ais.nmea")
	t.Setenv("AISPARSER_STATE_DIR", "/env/state")
	t.Setenv("AISPARSER_LOG_LEVEL", "debug")

	changed := map[string]bool{"input": true}
	cfg := Config{Input: "/cli/ais.nmea"}

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.Input != "/cli/ais.nmea" {
		t.Errorf("Input = %v, want /cli/ais.nmea (CLI should win)", cfg.Input)
	}
	if cfg.StateDir != "/env/state" {
		t.Errorf("StateDir = %v, want /env/state (env should override file)", cfg.StateDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.VesselMaxAge != 10*time.Minute {
		t.Errorf("VesselMaxAge = %v, want 10m (file should set)", cfg.VesselMaxAge)
	}
	if !cfg.Follow {
		t.Error("Follow = false, want true (file should set)")
	}
}
