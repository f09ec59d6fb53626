package receiver

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/bft-labs/aisparser/internal/domain"
	"github.com/bft-labs/aisparser/pkg/decoder"
)

// Default configuration values.
const (
	DefaultPollInterval       = 500 * time.Millisecond
	DefaultCheckpointLines    = 1000
	DefaultCheckpointInterval = 5 * time.Second
	DefaultFragmentMaxAge     = 10 * time.Second
	DefaultVesselMaxAge       = 30 * time.Minute
	DefaultVesselMaxEntries   = 100000
	DefaultBaud               = 38400
)

// Config describes one receiver.
type Config struct {
	// Input is a file path, or "-" for stdin. Mutually exclusive with Serial.
	Input string

	// Serial is a serial device such as /dev/ttyUSB0, read at Baud.
	Serial string
	Baud   int

	// Follow keeps reading a file as it grows.
	Follow       bool
	PollInterval time.Duration

	// Once stops at the end of input. Forced for non-followed files and stdin.
	Once bool

	// StateDir holds the resume position of file inputs. Empty disables resume.
	StateDir           string
	CheckpointLines    int
	CheckpointInterval time.Duration

	Checksum       decoder.ChecksumPolicy
	FragmentMaxAge time.Duration

	VesselMaxAge     time.Duration
	VesselMaxEntries int

	// KeepSentence copies the raw sentence into each record.
	KeepSentence bool
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.CheckpointLines == 0 {
		c.CheckpointLines = DefaultCheckpointLines
	}
	if c.CheckpointInterval == 0 {
		c.CheckpointInterval = DefaultCheckpointInterval
	}
	if c.FragmentMaxAge == 0 {
		c.FragmentMaxAge = DefaultFragmentMaxAge
	}
	if c.VesselMaxAge == 0 {
		c.VesselMaxAge = DefaultVesselMaxAge
	}
	if c.VesselMaxEntries == 0 {
		c.VesselMaxEntries = DefaultVesselMaxEntries
	}
}

// Validate reports every problem in the configuration at once. The returned
// error matches ErrInvalidConfig.
func (c Config) Validate() error {
	return c.validate(true)
}

func (c Config) validate(needInput bool) error {
	var err error
	switch {
	case needInput && c.Input == "" && c.Serial == "":
		err = multierr.Append(err, errors.New("an input file or serial device is required"))
	case c.Input != "" && c.Serial != "":
		err = multierr.Append(err, errors.New("input and serial are mutually exclusive"))
	}
	if c.Follow && c.Input == "-" {
		err = multierr.Append(err, errors.New("stdin cannot be followed"))
	}
	if c.Serial != "" && c.Baud <= 0 {
		err = multierr.Append(err, fmt.Errorf("baud must be positive, got %d", c.Baud))
	}
	if c.PollInterval < 0 {
		err = multierr.Append(err, errors.New("poll interval must not be negative"))
	}
	if c.CheckpointLines < 0 || c.CheckpointInterval < 0 {
		err = multierr.Append(err, errors.New("checkpoint triggers must not be negative"))
	}
	if c.FragmentMaxAge < 0 {
		err = multierr.Append(err, errors.New("fragment max age must not be negative"))
	}
	if c.VesselMaxAge < 0 || c.VesselMaxEntries < 0 {
		err = multierr.Append(err, errors.New("vessel cache bounds must not be negative"))
	}
	if c.Checksum < decoder.ChecksumVerify || c.Checksum > decoder.ChecksumIgnore {
		err = multierr.Append(err, fmt.Errorf("unknown checksum policy %d", c.Checksum))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}

// once reports whether the pipeline should stop at the first EOF.
func (c Config) once() bool {
	if c.Serial != "" {
		return c.Once
	}
	return c.Once || !c.Follow
}
