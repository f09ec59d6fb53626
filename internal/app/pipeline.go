package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/bft-labs/aisparser/internal/domain"
	"github.com/bft-labs/aisparser/internal/ports"
	"github.com/bft-labs/aisparser/pkg/ais"
	"github.com/bft-labs/aisparser/pkg/decoder"
	"github.com/bft-labs/aisparser/pkg/vessel"
)

// PipelineConfig contains configuration for the decode loop.
type PipelineConfig struct {
	// Input names the source in the persisted read position.
	// Empty disables resume.
	Input string

	PollInterval    time.Duration
	CheckpointLines int
	CheckpointEvery time.Duration

	// Once stops the loop at the first EOF instead of waiting for more input.
	Once bool

	SessionID string

	// KeepSentence copies the last raw sentence of each message into its record.
	KeepSentence bool

	// Now stamps records and checkpoints. Defaults to time.Now.
	Now func() time.Time
}

// RecordEmitter is notified of every pipeline outcome.
type RecordEmitter interface {
	OnRecord(rec ports.Record)
	OnVesselUpdate(v vessel.Vessel)
	OnDecodeError(line uint64, raw string, err error)
}

// Pipeline reads lines from a source, decodes them, updates the vessel
// cache and writes records to the sink.
type Pipeline struct {
	config    PipelineConfig
	source    ports.LineSource
	decoder   *decoder.Decoder
	cache     *vessel.Cache
	sink      ports.RecordSink
	stateRepo ports.StateRepository
	logger    ports.Logger
	emitter   RecordEmitter
	now       func() time.Time

	state      domain.State
	checkpoint *checkpointer
	lines      atomic.Uint64
	records    atomic.Uint64
}

// NewPipeline creates a pipeline. cache, sink, stateRepo and emitter may be nil.
func NewPipeline(
	config PipelineConfig,
	source ports.LineSource,
	dec *decoder.Decoder,
	cache *vessel.Cache,
	sink ports.RecordSink,
	stateRepo ports.StateRepository,
	logger ports.Logger,
	emitter RecordEmitter,
) *Pipeline {
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		config:    config,
		source:    source,
		decoder:   dec,
		cache:     cache,
		sink:      sink,
		stateRepo: stateRepo,
		logger:    logger,
		emitter:   emitter,
		now:       now,
	}
}

// Run executes the decode loop until ctx is canceled, the source is
// drained in Once mode, or a record cannot be written.
func (p *Pipeline) Run(ctx context.Context) (err error) {
	offset := p.loadState(ctx)
	if err := p.source.Open(ctx, offset); err != nil {
		return err
	}
	defer p.source.Close()

	p.checkpoint = newCheckpointer(p.config.CheckpointLines, p.config.CheckpointEvery, p.now)
	defer func() {
		if ferr := p.flush(context.Background()); ferr != nil && err == nil {
			err = ferr
		}
	}()

	backoff := newBackoff(DefaultBackoffInitial, DefaultBackoffMax)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := p.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				if err := p.flush(ctx); err != nil {
					return err
				}
				if p.config.Once {
					return nil
				}
				if err := p.wait(ctx); err != nil {
					return err
				}
				continue
			}

			p.logger.Error("read error", ports.Err(err), ports.Duration("retry_in", backoff.Current()))
			if err := backoff.Wait(ctx); err != nil {
				return err
			}
			p.reopen(ctx)
			continue
		}
		backoff.Reset()

		if err := p.handle(ctx, line); err != nil {
			return err
		}
		if pos := p.source.Position(); pos >= 0 && p.checkpoint.Advance(pos) {
			p.save(ctx)
		}
	}
}

// handle decodes one line. Only sink failures are returned; decode errors
// are reported to the emitter and the loop carries on.
func (p *Pipeline) handle(ctx context.Context, raw string) error {
	n := p.lines.Add(1)

	res, err := p.decoder.Decode(raw)
	if err != nil {
		if errors.Is(err, domain.ErrNotAIS) {
			return nil
		}
		if p.emitter != nil {
			p.emitter.OnDecodeError(n, raw, err)
		}
		return nil
	}
	if res.Message == nil {
		return nil
	}

	if p.cache != nil {
		if v, ok := p.cache.Observe(res.Message); ok && p.emitter != nil {
			p.emitter.OnVesselUpdate(v)
		}
	}

	h := res.Message.GetHeader()
	rec := ports.Record{
		Session:  p.config.SessionID,
		Line:     n,
		Received: p.now().UTC(),
		Channel:  res.Channel,
		Own:      res.Own(),
		Type:     h.Type,
		MMSI:     h.MMSI,
		Kind:     ais.KindOf(h.Type),
		Message:  res.Message,
	}
	if p.config.KeepSentence {
		rec.Sentence = res.Sentence.Raw
	}

	if p.sink != nil {
		if err := p.sink.Write(ctx, rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	p.records.Add(1)
	if p.emitter != nil {
		p.emitter.OnRecord(rec)
	}
	return nil
}

func (p *Pipeline) loadState(ctx context.Context) int64 {
	p.state = domain.State{Input: p.config.Input}
	if p.stateRepo == nil || p.config.Input == "" {
		return 0
	}
	st, err := p.stateRepo.Load(ctx)
	if err != nil {
		p.logger.Error("failed to load state", ports.Err(err))
		return 0
	}
	offset := st.ResumeOffset(p.config.Input)
	if offset > 0 {
		p.state = st
		p.logger.Info("resuming input",
			ports.String("input", p.config.Input),
			ports.Int64("offset", offset),
		)
	}
	return offset
}

// save persists the current read position.
func (p *Pipeline) save(ctx context.Context) {
	if p.stateRepo == nil || p.config.Input == "" || p.checkpoint == nil || !p.checkpoint.Dirty() {
		return
	}
	p.state.Input = p.config.Input
	p.state.Lines += uint64(p.checkpoint.pending)
	p.state.Offset = p.checkpoint.Offset()
	p.state.UpdatedAt = p.now().UTC()
	if err := p.stateRepo.Save(ctx, p.state); err != nil {
		p.logger.Error("failed to save state", ports.Err(err))
		return
	}
	p.checkpoint.Saved()
}

// flush pushes buffered records out and saves the read position.
func (p *Pipeline) flush(ctx context.Context) error {
	if f, ok := p.sink.(ports.Flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush records: %w", err)
		}
	}
	p.save(ctx)
	return nil
}

func (p *Pipeline) wait(ctx context.Context) error {
	if w, ok := p.source.(ports.Waiter); ok {
		return w.Wait(ctx)
	}
	timer := time.NewTimer(p.config.PollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reopen reopens the source at the last returned position after a read error.
func (p *Pipeline) reopen(ctx context.Context) {
	pos := p.source.Position()
	if pos < 0 {
		pos = 0
	}
	if err := p.source.Close(); err != nil {
		p.logger.Warn("close source", ports.Err(err))
	}
	if err := p.source.Open(ctx, pos); err != nil {
		p.logger.Error("reopen source", ports.Err(err))
		return
	}
	p.logger.Info("source reopened", ports.Int64("offset", pos))
}

// Lines returns the number of lines read so far.
func (p *Pipeline) Lines() uint64 { return p.lines.Load() }

// Records returns the number of records emitted so far.
func (p *Pipeline) Records() uint64 { return p.records.Load() }
