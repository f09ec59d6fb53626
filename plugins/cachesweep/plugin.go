// Package cachesweep provides periodic vessel cache eviction for a receiver.
// Expired stations are otherwise only dropped when they are looked up, so a
// long running receiver sweeps the cache on a timer to bound its memory.
package cachesweep

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/aisparser/pkg/log"
	"github.com/bft-labs/aisparser/pkg/receiver"
	"github.com/bft-labs/aisparser/pkg/vessel"
)

// DefaultInterval is the sweep period used when none is configured.
const DefaultInterval = time.Minute

// Plugin sweeps expired stations from the receiver's vessel cache.
type Plugin struct {
	interval       time.Duration
	runImmediately bool

	cache  *vessel.Cache
	logger log.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup

	swept atomic.Uint64
}

// Config holds configuration options for the cache sweep plugin.
type Config struct {
	// Interval is how often the cache is swept.
	// Default: 1 minute
	Interval time.Duration

	// RunImmediately sweeps once on startup.
	RunImmediately bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:       DefaultInterval,
		RunImmediately: true,
	}
}

// New creates a new cache sweep plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Plugin{
		interval:       cfg.Interval,
		runImmediately: cfg.RunImmediately,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "cachesweep"
}

// Initialize starts the sweep loop.
func (p *Plugin) Initialize(ctx context.Context, cfg receiver.PluginConfig) error {
	p.cache = cfg.Cache
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}

	if p.cache == nil {
		p.logger.Warn("cache sweep disabled: no vessel cache")
		return nil
	}
	if p.cache.MaxAge() <= 0 {
		p.logger.Info("cache sweep idle until a vessel max age is set")
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.sweepLoop(sweepCtx)

	p.logger.Info("cache sweep plugin initialized", log.Duration("interval", p.interval))
	return nil
}

// Shutdown stops the sweep loop.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// Swept returns the number of stations evicted by this plugin.
func (p *Plugin) Swept() uint64 {
	return p.swept.Load()
}

func (p *Plugin) sweepLoop(ctx context.Context) {
	defer p.wg.Done()

	if p.runImmediately {
		p.sweepOnce()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweepOnce()
		}
	}
}

func (p *Plugin) sweepOnce() {
	n := p.cache.Sweep()
	if n == 0 {
		return
	}
	p.swept.Add(uint64(n))
	p.logger.Debug("vessel cache swept",
		log.Int("evicted", n),
		log.Int("remaining", p.cache.Len()),
	)
}

var _ receiver.Plugin = (*Plugin)(nil)
