package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/aisparser/internal/adapters/output"
	"github.com/bft-labs/aisparser/internal/cliconfig"
	"github.com/bft-labs/aisparser/pkg/log"
	"github.com/bft-labs/aisparser/pkg/receiver"
	"github.com/bft-labs/aisparser/plugins/cachesweep"
	"github.com/bft-labs/aisparser/plugins/configwatcher"
)

const helpDescription = `
Decode AIS AIVDM/AIVDO sentences into structured records.

Reads NMEA 0183 lines from a file, stdin or a serial receiver, verifies
checksums, reassembles multi-sentence messages, decodes all 27 message
types and known binary applications, and writes one JSON object per line
or a YAML document per message to stdout or a file.

With --follow the input file is tailed, and with --state-dir the read
position survives restarts.
`

var exampleUsage = strings.TrimSpace(`
  aisparser --input capture.nmea
  tail -f /var/log/ais.nmea | aisparser --format yaml
  aisparser --input /var/log/ais.nmea --follow --state-dir /var/lib/aisparser
  aisparser --serial /dev/ttyUSB0 --baud 38400 --output records.jsonl
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "aisparser",
		Short:         "Decode AIS AIVDM/AIVDO sentences into JSON or YAML records",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger = cliconfig.ConfigureLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
			logger.Debug().Interface("config", cfg).Msg("configuration")

			return run(cmd.Context(), cfg, cfgFile, logger)
		},
	}

	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.aisparser/config.toml)")

	f.StringVarP(&cfg.Input, "input", "i", cfg.Input, `input file, or "-" for stdin`)
	f.StringVar(&cfg.Serial, "serial", cfg.Serial, "serial device to read instead of a file")
	f.IntVar(&cfg.Baud, "baud", cfg.Baud, "serial baud rate")
	f.BoolVarP(&cfg.Follow, "follow", "f", cfg.Follow, "keep reading as the input file grows")
	f.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "poll interval when idle")
	f.BoolVar(&cfg.Once, "once", cfg.Once, "stop at end of input even when following")

	f.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for the resume offset (disabled when empty)")
	f.IntVar(&cfg.CheckpointLines, "checkpoint-lines", cfg.CheckpointLines, "save the read position every N lines")
	f.DurationVar(&cfg.CheckpointInterval, "checkpoint-interval", cfg.CheckpointInterval, "save the read position at least this often")

	f.StringVar(&cfg.Format, "format", cfg.Format, "record format: json or yaml")
	f.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output file (default: stdout)")
	f.BoolVar(&cfg.KeepSentence, "keep-sentence", cfg.KeepSentence, "include the raw sentence in each record")

	f.BoolVar(&cfg.RequireChecksum, "require-checksum", cfg.RequireChecksum, "reject sentences without a checksum")
	f.BoolVar(&cfg.IgnoreChecksum, "ignore-checksum", cfg.IgnoreChecksum, "accept sentences with a wrong checksum")
	f.DurationVar(&cfg.FragmentMaxAge, "fragment-max-age", cfg.FragmentMaxAge, "drop incomplete multi-sentence groups older than this")

	f.DurationVar(&cfg.VesselMaxAge, "vessel-max-age", cfg.VesselMaxAge, "forget stations not heard from for this long")
	f.IntVar(&cfg.VesselMaxEntries, "vessel-max-entries", cfg.VesselMaxEntries, "maximum number of tracked stations")
	f.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "vessel cache sweep interval")

	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
	f.BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "reload vessel max age and log level when the config file changes")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("aisparser")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, cfgFile string, logger zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dst, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	sink, err := output.NewSink(cfg.Format, dst)
	if err != nil {
		dst.Close()
		return err
	}

	opts := []receiver.Option{
		receiver.WithLogger(log.NewZerologAdapterWithLogger(logger)),
		receiver.WithSink(sink),
		cachesweep.WithCacheSweep(cachesweep.Config{Interval: cfg.SweepInterval}),
	}
	if cfg.WatchConfig && cfgFile != "" {
		opts = append(opts, configwatcher.WithConfigWatcher(configwatcher.Config{Path: cfgFile}))
	}

	r, err := receiver.New(cfg.ReceiverConfig(), opts...)
	if err != nil {
		sink.Close()
		return fmt.Errorf("create receiver: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := r.Start(ctx); err != nil {
		sink.Close()
		return fmt.Errorf("start receiver: %w", err)
	}

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("received signal, stopping...")
		runErr = r.Stop()
	case <-r.Done():
		// Input exhausted or the pipeline failed; the receiver has already
		// settled in Stopped or Crashed.
		switch r.Status() {
		case receiver.StateStopped, receiver.StateCrashed:
			runErr = r.Err()
		default:
			runErr = r.Stop()
		}
	}
	if errors.Is(runErr, receiver.ErrNotRunning) {
		runErr = nil
	}

	runErr = multierr.Append(runErr, sink.Close())
	summary(logger, r)
	return runErr
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return f, nil
}

func summary(logger zerolog.Logger, r *receiver.Receiver) {
	st := r.Stats()
	logger.Info().
		Str("session", r.SessionID()).
		Uint64("lines", r.Lines()).
		Uint64("records", r.Records()).
		Uint64("messages", st.Messages).
		Uint64("errors", st.Errors()).
		Uint64("skipped", st.Skipped).
		Uint64("dropped_groups", st.Dropped).
		Int("vessels", r.Cache().Len()).
		Msg("summary")
}
