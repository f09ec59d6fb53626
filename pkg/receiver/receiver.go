package receiver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/bft-labs/aisparser/internal/adapters/fs"
	"github.com/bft-labs/aisparser/internal/adapters/serial"
	"github.com/bft-labs/aisparser/internal/app"
	"github.com/bft-labs/aisparser/internal/domain"
	"github.com/bft-labs/aisparser/internal/ports"
	"github.com/bft-labs/aisparser/pkg/decoder"
	"github.com/bft-labs/aisparser/pkg/log"
	"github.com/bft-labs/aisparser/pkg/vessel"
)

// Lifecycle errors.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
)

// Receiver runs the decode pipeline over one input in the background.
// Use New to create one, then Start.
type Receiver struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	pipeline  *app.Pipeline
	decoder   *decoder.Decoder
	cache     *vessel.Cache
	logger    log.Logger
	sessionID string

	plugins  []Plugin
	active   []Plugin
	stopOnce *sync.Once

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// New creates a Receiver in StateStopped.
func New(cfg Config, opts ...Option) (*Receiver, error) {
	cfg.SetDefaults()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.validate(o.source == nil); err != nil {
		return nil, err
	}

	logger := o.logger
	sessionID := uuid.NewString()
	emitter := &eventEmitter{handler: o.eventHandler}

	cache := vessel.New(
		vessel.WithMaxEntries(cfg.VesselMaxEntries),
		vessel.WithMaxAge(cfg.VesselMaxAge),
		vessel.WithClock(o.now),
	)
	dec := decoder.New(
		decoder.WithLogger(logger),
		decoder.WithChecksumPolicy(cfg.Checksum),
		decoder.WithFragmentMaxAge(cfg.FragmentMaxAge),
		decoder.WithDropHandler(emitter.OnFragmentDrop),
		decoder.WithClock(o.now),
	)

	src, input, once, err := buildSource(cfg, o, logger)
	if err != nil {
		return nil, err
	}
	var stateRepo ports.StateRepository
	if cfg.StateDir != "" && input != "" {
		stateRepo = fs.NewStateFileRepository(cfg.StateDir)
	}

	pipeline := app.NewPipeline(app.PipelineConfig{
		Input:           input,
		PollInterval:    cfg.PollInterval,
		CheckpointLines: cfg.CheckpointLines,
		CheckpointEvery: cfg.CheckpointInterval,
		Once:            once,
		SessionID:       sessionID,
		KeepSentence:    cfg.KeepSentence,
		Now:             o.now,
	}, src, dec, cache, o.sink, stateRepo, logger, emitter)

	return &Receiver{
		config:    cfg,
		opts:      o,
		lifecycle: app.NewLifecycle(logger, emitter),
		pipeline:  pipeline,
		decoder:   dec,
		cache:     cache,
		logger:    logger,
		sessionID: sessionID,
		plugins:   o.plugins,
		stopOnce:  new(sync.Once),
		done:      closedChan(),
	}, nil
}

// buildSource picks the line source and the name its read position is
// persisted under (empty when it cannot be resumed).
func buildSource(cfg Config, o options, logger log.Logger) (ports.LineSource, string, bool, error) {
	switch {
	case o.source != nil:
		return o.source, "", cfg.Once, nil
	case cfg.Serial != "":
		return serial.NewSource(cfg.Serial, cfg.Baud, logger), "", cfg.once(), nil
	case cfg.Input == fs.Stdin:
		return fs.NewFileSource(fs.Stdin, false, cfg.PollInterval, logger), "", cfg.once(), nil
	default:
		abs, err := filepath.Abs(cfg.Input)
		if err != nil {
			return nil, "", false, fmt.Errorf("resolve input: %w", err)
		}
		return fs.NewFileSource(abs, cfg.Follow, cfg.PollInterval, logger), abs, cfg.once(), nil
	}
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// Start launches the pipeline and returns immediately. Plugins are
// initialized first; if one fails the receiver crashes and the error is
// returned.
func (r *Receiver) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	if err := r.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.lifecycle.SetCancel(cancel)
	r.err = nil
	r.active = nil
	r.stopOnce = new(sync.Once)

	r.logger.Info("receiver starting",
		log.Session(r.sessionID),
		log.String("input", r.describeInput()),
		log.String("checksum", r.config.Checksum.String()),
	)

	pluginCfg := PluginConfig{
		StateDir:  r.config.StateDir,
		SessionID: r.sessionID,
		Cache:     r.cache,
		Logger:    r.logger,
	}
	for _, p := range r.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			r.logger.Error("plugin initialization failed", log.String("plugin", p.Name()), log.Err(err))
			cancel()
			_ = r.shutdownPlugins()
			_ = r.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		r.active = append(r.active, p)
		r.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	done := make(chan struct{})
	r.done = done
	r.lifecycle.AddWorker()
	go func() {
		defer r.lifecycle.WorkerDone()
		defer close(done)

		if err := r.lifecycle.TransitionTo(app.StateRunning, "pipeline starting"); err != nil {
			r.logger.Debug("pipeline not started", log.Err(err))
			return
		}
		r.finish(r.pipeline.Run(runCtx))
	}()
	return nil
}

// finish settles the lifecycle after the pipeline returned on its own:
// drained input or a canceled parent context stop cleanly, anything else
// crashes. When Stop is already in progress it owns the transition.
func (r *Receiver) finish(err error) {
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		r.logger.Error("pipeline error", log.Err(err))
		r.mu.Lock()
		r.err = err
		r.cancel()
		_ = r.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		r.mu.Unlock()
		_ = r.shutdownPlugins()
		return
	}

	r.mu.Lock()
	if terr := r.lifecycle.TransitionTo(app.StateStopping, "input finished"); terr != nil {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.mu.Unlock()

	if serr := r.shutdownPlugins(); serr != nil {
		r.mu.Lock()
		r.err = serr
		r.mu.Unlock()
	}
	_ = r.lifecycle.TransitionTo(app.StateStopped, "input finished")
}

// Stop cancels the pipeline, waits for it to flush and persist its read
// position, then shuts plugins down. It waits at most ShutdownTimeout and
// returns ErrShutdownTimeout if the pipeline did not finish in time.
func (r *Receiver) Stop() error {
	r.mu.Lock()
	if !r.lifecycle.CanStop() {
		r.mu.Unlock()
		return ErrNotRunning
	}
	if err := r.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		r.mu.Unlock()
		return err
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	waitErr := r.lifecycle.WaitWithTimeout(app.ShutdownTimeout)
	err := multierr.Append(waitErr, r.shutdownPlugins())

	if waitErr != nil {
		_ = r.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = r.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// shutdownPlugins stops initialized plugins in reverse order, once per run.
func (r *Receiver) shutdownPlugins() error {
	var err error
	r.stopOnce.Do(func() {
		ctx := context.Background()
		for i := len(r.active) - 1; i >= 0; i-- {
			p := r.active[i]
			if serr := p.Shutdown(ctx); serr != nil {
				r.logger.Error("plugin shutdown failed", log.String("plugin", p.Name()), log.Err(serr))
				err = multierr.Append(err, fmt.Errorf("plugin %s: %w", p.Name(), serr))
				continue
			}
			r.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	})
	return err
}

func (r *Receiver) describeInput() string {
	switch {
	case r.opts.source != nil:
		return "custom"
	case r.config.Serial != "":
		return r.config.Serial
	default:
		return r.config.Input
	}
}

// Status returns the current lifecycle state. Safe for concurrent use.
func (r *Receiver) Status() State { return State(r.lifecycle.State()) }

// Done is closed when the pipeline goroutine of the current run exits.
func (r *Receiver) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Err returns the error that ended the last run, if any.
func (r *Receiver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Stats returns decoder counters.
func (r *Receiver) Stats() decoder.Stats { return r.decoder.Stats() }

// Lines returns the number of lines read.
func (r *Receiver) Lines() uint64 { return r.pipeline.Lines() }

// Records returns the number of records emitted.
func (r *Receiver) Records() uint64 { return r.pipeline.Records() }

// Cache returns the vessel cache fed by the pipeline.
func (r *Receiver) Cache() *vessel.Cache { return r.cache }

// SessionID identifies this receiver in logs and records.
func (r *Receiver) SessionID() string { return r.sessionID }
